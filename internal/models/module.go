package models

import "time"

// CurrentVersion is the only supported value of PersistedModule.Version.
const CurrentVersion = 1

// TrainingType classifies the content of a module.
type TrainingType string

const (
	TrainingTypeApp    TrainingType = "app"
	TrainingTypeCore   TrainingType = "core"
	TrainingTypeWidget TrainingType = "widget"
)

// Valid reports whether t is one of the known training types.
func (t TrainingType) Valid() bool {
	switch t {
	case TrainingTypeApp, TrainingTypeCore, TrainingTypeWidget:
		return true
	}
	return false
}

// Translation providers.
const (
	TranslationProviderNone     = "NONE"
	TranslationProviderPoEditor = "poeditor"
)

// TranslationConnection links a module to a translation provider project.
type TranslationConnection struct {
	Provider string `json:"provider"`
	Project  string `json:"project,omitempty"`
}

// Step groups pages under a title.
type Step struct {
	Title    TranslatableText   `json:"title"`
	Subtitle *TranslatableText  `json:"subtitle,omitempty"`
	Pages    []TranslatableText `json:"pages"`
}

type Contents struct {
	Welcome TranslatableText `json:"welcome"`
	Steps   []Step           `json:"steps"`
}

// Clone deep-copies the contents.
func (c Contents) Clone() Contents {
	out := Contents{Welcome: c.Welcome.Clone(), Steps: make([]Step, len(c.Steps))}
	for i, step := range c.Steps {
		s := Step{Title: step.Title.Clone(), Pages: make([]TranslatableText, len(step.Pages))}
		if step.Subtitle != nil {
			sub := step.Subtitle.Clone()
			s.Subtitle = &sub
		}
		for j, page := range step.Pages {
			s.Pages[j] = page.Clone()
		}
		out.Steps[i] = s
	}
	return out
}

// NamedRef identifies a user or a group.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Access is a sharing entry. Access holds a DHIS2 access string such as
// "rw------": the first two characters are metadata read and write.
type Access struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Access string `json:"access"`
}

// PersistedModule is the stored form of a training module. Its JSON shape is
// shared with archives and bundled defaults.
type PersistedModule struct {
	Version             int                   `json:"_version"`
	ID                  string                `json:"id"`
	Name                TranslatableText      `json:"name"`
	Icon                string                `json:"icon"`
	Type                string                `json:"type"`
	Disabled            bool                  `json:"disabled"`
	Contents            Contents              `json:"contents"`
	Translation         TranslationConnection `json:"translation"`
	LastTranslationSync time.Time             `json:"lastTranslationSync"`
	Revision            int                   `json:"revision"`
	DhisVersionRange    string                `json:"dhisVersionRange"`
	DhisAppKey          string                `json:"dhisAppKey"`
	DhisLaunchUrl       string                `json:"dhisLaunchUrl"`
	DhisAuthorities     []string              `json:"dhisAuthorities"`
	PublicAccess        string                `json:"publicAccess"`
	UserAccesses        []Access              `json:"userAccesses"`
	UserGroupAccesses   []Access              `json:"userGroupAccesses"`
	User                NamedRef              `json:"user"`
	LastUpdatedBy       NamedRef              `json:"lastUpdatedBy"`
	Created             time.Time             `json:"created"`
	LastUpdated         time.Time             `json:"lastUpdated"`
}

// DefaultPublicAccess grants nothing to the public.
const DefaultPublicAccess = "--------"

// DefaultModule is the canonical shape partial updates are merged over.
// Provenance and timestamps are left zero; the write path fills them.
func DefaultModule() PersistedModule {
	return PersistedModule{
		Version:     CurrentVersion,
		Name:        NewText("", ""),
		Type:        string(TrainingTypeApp),
		Contents:    Contents{Welcome: NewText("", ""), Steps: []Step{}},
		Translation: TranslationConnection{Provider: TranslationProviderNone},
		Revision:    1,

		DhisAuthorities:   []string{},
		PublicAccess:      DefaultPublicAccess,
		UserAccesses:      []Access{},
		UserGroupAccesses: []Access{},
	}
}
