// Package session holds the mutable state shared by helpers during one build
// pass: the counter table and the include depth guard.
package session

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

const includeDepthExceededCode = "INCLUDE_DEPTH_EXCEEDED"

// ErrIncludeDepthExceeded is the source error of the classified failure
// returned by Enter when the include chain grows past the configured bound.
var ErrIncludeDepthExceeded = errors.New("session: include depth exceeded")

// Session is owned by a single build. It is not safe for concurrent use;
// helpers run on the render call stack.
type Session struct {
	id       string
	maxDepth int
	counts   map[string]int
	chain    []string
}

// New returns a session bounding include recursion at maxDepth levels.
// maxDepth <= 0 disables the bound.
func New(maxDepth int) *Session {
	s := &Session{maxDepth: maxDepth}
	s.Reset()
	return s
}

// Reset clears every counter and the include chain and assigns a fresh id.
// Call it at the start of each independent build.
func (s *Session) Reset() {
	s.id = uuid.NewString()
	s.counts = map[string]int{}
	s.chain = nil
}

// ID identifies the current build pass in logs.
func (s *Session) ID() string {
	return s.id
}

// Count returns the counter for key, registering it at zero when unseen.
func (s *Session) Count(key string) int {
	value, ok := s.counts[key]
	if !ok {
		s.counts[key] = 0
	}
	return value
}

// Increment advances the counter for key. An unseen key starts at zero
// rather than one.
func (s *Session) Increment(key string) {
	if value, ok := s.counts[key]; ok {
		s.counts[key] = value + 1
		return
	}
	s.counts[key] = 0
}

// Depth reports how many includes are currently being rendered.
func (s *Session) Depth() int {
	return len(s.chain)
}

// Enter records target on the include chain. The returned leave func must be
// called once the include finished rendering.
func (s *Session) Enter(target string) (func(), error) {
	if s.maxDepth > 0 && len(s.chain) >= s.maxDepth {
		chain := append(append([]string(nil), s.chain...), target)
		return nil, goerrors.Wrap(ErrIncludeDepthExceeded, goerrors.CategoryValidation,
			fmt.Sprintf("include depth limit %d exceeded: %s", s.maxDepth, strings.Join(chain, " -> "))).
			WithTextCode(includeDepthExceededCode)
	}
	s.chain = append(s.chain, target)
	depth := len(s.chain)
	return func() {
		if len(s.chain) >= depth {
			s.chain = s.chain[:depth-1]
		}
	}, nil
}
