// Package instance describes the DHIS2 instance the modules run against:
// its version and which apps are installed.
package instance

import (
	"context"
	"strings"
)

type Context interface {
	Version(ctx context.Context) (string, error)
	// IsAppInstalledByURL reports whether launchURL resolves on the
	// instance. An empty URL counts as installed; lookup failures as not.
	IsAppInstalledByURL(ctx context.Context, launchURL string) bool
}

// StaticContext answers from configuration, for running without an instance.
type StaticContext struct {
	version   string
	installed map[string]struct{}
}

func NewStaticContext(version string, installedURLs []string) *StaticContext {
	installed := make(map[string]struct{}, len(installedURLs))
	for _, u := range installedURLs {
		installed[strings.TrimSpace(u)] = struct{}{}
	}
	return &StaticContext{version: version, installed: installed}
}

func (s *StaticContext) Version(context.Context) (string, error) {
	return s.version, nil
}

func (s *StaticContext) IsAppInstalledByURL(_ context.Context, launchURL string) bool {
	if launchURL == "" {
		return true
	}
	_, ok := s.installed[launchURL]
	return ok
}
