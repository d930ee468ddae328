// Package translation talks to external translation services.
package translation

import "context"

// Term is one translated term of a project in a single language.
type Term struct {
	Term        string
	Translation string
}

// Provider lists the languages and terms of a translation project.
type Provider interface {
	ListLanguages(ctx context.Context, project string) ([]string, error)
	ListTerms(ctx context.Context, project, language string) ([]Term, error)
}
