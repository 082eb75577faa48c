package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/afero"
)

var (
	errWriteContentRequired = errors.New("generator: write requires content reader")
	errWritePathRequired    = errors.New("generator: write requires path")
)

// WriteFileRequest describes a file write routed through an ArtifactWriter.
type WriteFileRequest struct {
	Path     string
	Content  io.Reader
	Size     int64
	Checksum string
}

// ArtifactWriter persists rendered pages.
type ArtifactWriter interface {
	WriteFile(ctx context.Context, req WriteFileRequest) error
}

// AtomicWriter writes to the host filesystem. Each target is replaced with a
// single rename.
type AtomicWriter struct{}

// NewAtomicWriter returns the host filesystem writer.
func NewAtomicWriter() AtomicWriter {
	return AtomicWriter{}
}

func (AtomicWriter) WriteFile(ctx context.Context, req WriteFileRequest) error {
	if err := checkRequest(ctx, req); err != nil {
		return err
	}
	if dir := filepath.Dir(req.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("generator: ensure dir %s: %w", dir, err)
		}
	}
	if err := atomic.WriteFile(req.Path, req.Content); err != nil {
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	return nil
}

// FsWriter writes into an afero filesystem. Tests and in-memory builds use it.
type FsWriter struct {
	Fs afero.Fs
}

// NewFsWriter returns a writer bound to fsys.
func NewFsWriter(fsys afero.Fs) FsWriter {
	return FsWriter{Fs: fsys}
}

func (w FsWriter) WriteFile(ctx context.Context, req WriteFileRequest) error {
	if err := checkRequest(ctx, req); err != nil {
		return err
	}
	if err := afero.WriteReader(w.Fs, req.Path, req.Content); err != nil {
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	return nil
}

type noopWriter struct{}

func (noopWriter) WriteFile(context.Context, WriteFileRequest) error {
	return nil
}

func checkRequest(ctx context.Context, req WriteFileRequest) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if req.Content == nil {
		return errWriteContentRequired
	}
	if strings.TrimSpace(req.Path) == "" {
		return errWritePathRequired
	}
	return nil
}
