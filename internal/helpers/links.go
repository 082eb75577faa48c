package helpers

import (
	"strings"

	"github.com/aymerick/raymond"
)

// editInGitHubLink builds the GitHub blob URL of src= or the current page.
func (s *Set) editInGitHubLink(options *raymond.Options) string {
	l := s.config.Links
	return strings.Join([]string{
		l.GitHubProtocol, l.GitHubBase,
		"/", l.GitHubOrg,
		"/", l.GitHubRepo,
		"/blob/", l.GitHubBranch,
		"/", linkSource(options),
	}, "")
}

// editInProseLink builds the Prose editor URL of src= or the current page.
func (s *Set) editInProseLink(options *raymond.Options) string {
	l := s.config.Links
	return strings.Join([]string{
		l.ProseBase,
		"/#", l.GitHubOrg,
		"/", l.GitHubRepo,
		"/edit/", l.GitHubBranch,
		"/", linkSource(options),
	}, "")
}

func (s *Set) triggerSiteRebuildLink() string {
	l := s.config.Links
	return l.KuduProtocol + l.KuduRepo + l.KuduSuffix
}

// gitSourceLink is the authenticated clone URL used for site rebuilds.
func (s *Set) gitSourceLink() string {
	l := s.config.Links
	return strings.Join([]string{
		l.GitHubProtocol, l.GitHubToken,
		"@", l.GitHubBase,
		"/", l.GitHubOrg,
		"/", l.GitHubRepo,
		".git",
	}, "")
}

func linkSource(options *raymond.Options) string {
	if src := options.HashStr("src"); src != "" {
		return src
	}
	return pageField(options.Ctx(), "src")
}
