package modules

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trainingkeeper/internal/common"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
	"github.com/dmitrijs2005/trainingkeeper/internal/permissions"
)

// buildContext carries what every domain model of one request shares.
type buildContext struct {
	user     models.User
	version  string
	progress []models.Progress
}

// buildDomainModel derives the presentation form of rec. An unsupported
// document version is an error wrapping common.ErrUnsupportedVersion.
func (r *Repository) buildDomainModel(ctx context.Context, rec models.PersistedModule, bc buildContext) (models.TrainingModule, error) {
	if rec.Version != models.CurrentVersion {
		return models.TrainingModule{}, fmt.Errorf("%w: module %s has version %d", common.ErrUnsupportedVersion, rec.ID, rec.Version)
	}

	typ := models.TrainingType(rec.Type)
	if !typ.Valid() {
		typ = models.TrainingTypeApp
	}

	return models.TrainingModule{
		ID:                  rec.ID,
		Name:                rec.Name.Clone(),
		Icon:                rec.Icon,
		Type:                typ,
		Disabled:            rec.Disabled,
		Contents:            models.DecorateContents(rec.ID, rec.Contents),
		Translation:         rec.Translation,
		LastTranslationSync: rec.LastTranslationSync,
		Revision:            rec.Revision,
		DhisVersionRange:    rec.DhisVersionRange,
		DhisAppKey:          rec.DhisAppKey,
		DhisLaunchUrl:       rec.DhisLaunchUrl,
		DhisAuthorities:     rec.DhisAuthorities,
		PublicAccess:        rec.PublicAccess,
		UserAccesses:        rec.UserAccesses,
		UserGroupAccesses:   rec.UserGroupAccesses,
		User:                rec.User,
		LastUpdatedBy:       rec.LastUpdatedBy,
		Created:             rec.Created,
		LastUpdated:         rec.LastUpdated,

		Installed:  r.instance.IsAppInstalledByURL(ctx, rec.DhisLaunchUrl),
		Editable:   permissions.Authorize(rec, bc.user, permissions.Write),
		Compatible: IsCompatible(rec.DhisVersionRange, bc.version),
		Progress:   models.FindProgress(bc.progress, rec.ID),
	}, nil
}

// newBuildContext loads the acting user, the instance version and the
// user's progress.
func (r *Repository) newBuildContext(ctx context.Context, user models.User) (buildContext, error) {
	version, err := r.instance.Version(ctx)
	if err != nil {
		return buildContext{}, fmt.Errorf("instance version: %w", err)
	}
	progress, err := r.progress(ctx, user)
	if err != nil {
		return buildContext{}, err
	}
	return buildContext{user: user, version: version, progress: progress}, nil
}
