package models

import (
	"strconv"
	"time"
)

// Page is a persisted page decorated with its synthetic id.
type Page struct {
	ID string `json:"id"`
	TranslatableText
}

type DomainStep struct {
	ID       string            `json:"id"`
	Title    TranslatableText  `json:"title"`
	Subtitle *TranslatableText `json:"subtitle,omitempty"`
	Pages    []Page            `json:"pages"`
}

type DomainContents struct {
	Welcome TranslatableText `json:"welcome"`
	Steps   []DomainStep     `json:"steps"`
}

// TrainingModule is the presentation form of a module. It is derived on
// every read and never persisted.
type TrainingModule struct {
	ID                  string                `json:"id"`
	Name                TranslatableText      `json:"name"`
	Icon                string                `json:"icon"`
	Type                TrainingType          `json:"type"`
	Disabled            bool                  `json:"disabled"`
	Contents            DomainContents        `json:"contents"`
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

	Installed  bool     `json:"installed"`
	Editable   bool     `json:"editable"`
	Compatible bool     `json:"compatible"`
	Progress   Progress `json:"progress"`
}

// StepID is the synthetic id of the step at stepIdx.
func StepID(moduleID string, stepIdx int) string {
	return moduleID + "-step-" + strconv.Itoa(stepIdx)
}

// PageID is the synthetic id of page pageIdx inside step stepIdx.
func PageID(moduleID string, stepIdx, pageIdx int) string {
	return moduleID + "-page-" + strconv.Itoa(stepIdx) + "-" + strconv.Itoa(pageIdx)
}

// DecorateContents assigns synthetic step and page ids from array position.
func DecorateContents(moduleID string, c Contents) DomainContents {
	out := DomainContents{Welcome: c.Welcome.Clone(), Steps: make([]DomainStep, len(c.Steps))}
	for i, step := range c.Steps {
		ds := DomainStep{ID: StepID(moduleID, i), Title: step.Title.Clone(), Pages: make([]Page, len(step.Pages))}
		if step.Subtitle != nil {
			sub := step.Subtitle.Clone()
			ds.Subtitle = &sub
		}
		for j, page := range step.Pages {
			ds.Pages[j] = Page{ID: PageID(moduleID, i, j), TranslatableText: page.Clone()}
		}
		out.Steps[i] = ds
	}
	return out
}

// Persistable strips the synthetic ids again.
func (c DomainContents) Persistable() Contents {
	out := Contents{Welcome: c.Welcome.Clone(), Steps: make([]Step, len(c.Steps))}
	for i, step := range c.Steps {
		s := Step{Title: step.Title.Clone(), Pages: make([]TranslatableText, len(step.Pages))}
		if step.Subtitle != nil {
			sub := step.Subtitle.Clone()
			s.Subtitle = &sub
		}
		for j, page := range step.Pages {
			s.Pages[j] = page.TranslatableText.Clone()
		}
		out.Steps[i] = s
	}
	return out
}
