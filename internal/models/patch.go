package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/trainingkeeper/internal/common"
)

// ModulePatch is a partial module. ID and Name are required; every other
// field is applied only when set (non-nil).
//
// Precedence when the write path builds the stored record: fields set here
// override DefaultModule(); User and Created, when unset, are taken from the
// record already stored, and only then from the acting user and the clock.
type ModulePatch struct {
	ID   string           `json:"id"`
	Name TranslatableText `json:"name"`

	Icon                *string                `json:"icon,omitempty"`
	Type                *TrainingType          `json:"type,omitempty"`
	Disabled            *bool                  `json:"disabled,omitempty"`
	Contents            *Contents              `json:"contents,omitempty"`
	Translation         *TranslationConnection `json:"translation,omitempty"`
	LastTranslationSync *time.Time             `json:"lastTranslationSync,omitempty"`
	Revision            *int                   `json:"revision,omitempty"`
	DhisVersionRange    *string                `json:"dhisVersionRange,omitempty"`
	DhisAppKey          *string                `json:"dhisAppKey,omitempty"`
	DhisLaunchUrl       *string                `json:"dhisLaunchUrl,omitempty"`
	DhisAuthorities     []string               `json:"dhisAuthorities,omitempty"`
	PublicAccess        *string                `json:"publicAccess,omitempty"`
	UserAccesses        []Access               `json:"userAccesses,omitempty"`
	UserGroupAccesses   []Access               `json:"userGroupAccesses,omitempty"`

	User    *NamedRef  `json:"user,omitempty"`
	Created *time.Time `json:"created,omitempty"`
}

// Validate checks the fields every write needs.
func (p ModulePatch) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: module id is required", common.ErrorValidation)
	}
	if strings.TrimSpace(p.Name.Key) == "" {
		return fmt.Errorf("%w: module name is required", common.ErrorValidation)
	}
	return nil
}

// Apply merges the patch over base and returns the result. base is not
// modified.
func (p ModulePatch) Apply(base PersistedModule) PersistedModule {
	out := base
	out.ID = p.ID
	out.Name = p.Name.Clone()
	out.Contents = base.Contents.Clone()

	if p.Icon != nil {
		out.Icon = *p.Icon
	}
	if p.Type != nil {
		out.Type = string(*p.Type)
	}
	if p.Disabled != nil {
		out.Disabled = *p.Disabled
	}
	if p.Contents != nil {
		out.Contents = p.Contents.Clone()
	}
	if p.Translation != nil {
		out.Translation = *p.Translation
	}
	if p.LastTranslationSync != nil {
		out.LastTranslationSync = *p.LastTranslationSync
	}
	if p.Revision != nil {
		out.Revision = *p.Revision
	}
	if p.DhisVersionRange != nil {
		out.DhisVersionRange = *p.DhisVersionRange
	}
	if p.DhisAppKey != nil {
		out.DhisAppKey = *p.DhisAppKey
	}
	if p.DhisLaunchUrl != nil {
		out.DhisLaunchUrl = *p.DhisLaunchUrl
	}
	if p.DhisAuthorities != nil {
		out.DhisAuthorities = append([]string{}, p.DhisAuthorities...)
	}
	if p.PublicAccess != nil {
		out.PublicAccess = *p.PublicAccess
	}
	if p.UserAccesses != nil {
		out.UserAccesses = append([]Access{}, p.UserAccesses...)
	}
	if p.UserGroupAccesses != nil {
		out.UserGroupAccesses = append([]Access{}, p.UserGroupAccesses...)
	}
	if p.User != nil {
		out.User = *p.User
	}
	if p.Created != nil {
		out.Created = *p.Created
	}
	return out
}

// Patch converts an edited domain model back into a full patch.
func (m TrainingModule) Patch() ModulePatch {
	contents := m.Contents.Persistable()
	user := m.User
	created := m.Created
	sync := m.LastTranslationSync

	return ModulePatch{
		ID:                  m.ID,
		Name:                m.Name.Clone(),
		Icon:                &m.Icon,
		Type:                &m.Type,
		Disabled:            &m.Disabled,
		Contents:            &contents,
		Translation:         &m.Translation,
		LastTranslationSync: &sync,
		Revision:            &m.Revision,
		DhisVersionRange:    &m.DhisVersionRange,
		DhisAppKey:          &m.DhisAppKey,
		DhisLaunchUrl:       &m.DhisLaunchUrl,
		DhisAuthorities:     m.DhisAuthorities,
		PublicAccess:        &m.PublicAccess,
		UserAccesses:        m.UserAccesses,
		UserGroupAccesses:   m.UserGroupAccesses,
		User:                &user,
		Created:             &created,
	}
}

// ModuleBuilder carries what is needed to start a new module.
type ModuleBuilder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate requires every field.
func (b ModuleBuilder) Validate() error {
	fields := []struct{ name, value string }{
		{"id", b.ID}, {"name", b.Name}, {"title", b.Title}, {"description", b.Description},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s must have a value", common.ErrorValidation, f.name)
		}
	}
	return nil
}

// Patch turns the builder into a module patch. The welcome page is a
// markdown document headed by the title. Term keys are derived from the
// module id so they stay stable across re-creation.
func (b ModuleBuilder) Patch() ModulePatch {
	welcome := NewText(b.ID+"-welcome", "# "+strings.TrimSpace(b.Title)+"\n\n"+strings.TrimSpace(b.Description))
	contents := Contents{Welcome: welcome, Steps: []Step{}}

	return ModulePatch{
		ID:       b.ID,
		Name:     NewText(b.ID+"-name", b.Name),
		Contents: &contents,
	}
}
