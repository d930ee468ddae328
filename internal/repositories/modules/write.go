package modules

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/trainingkeeper/internal/common"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
	"github.com/dmitrijs2005/trainingkeeper/internal/storage"
)

// save stamps provenance on rec and stores it, replacing any record with the
// same id. lastUpdatedBy and lastUpdated are always refreshed; user and
// created are reset to the acting user and now only when recreate is set.
func (r *Repository) save(ctx context.Context, rec models.PersistedModule, user models.User, recreate bool) (models.PersistedModule, error) {
	if rec.Version != models.CurrentVersion {
		return models.PersistedModule{}, fmt.Errorf("%w: module %s has version %d", common.ErrUnsupportedVersion, rec.ID, rec.Version)
	}
	if rec.ID == "" {
		return models.PersistedModule{}, fmt.Errorf("%w: module id is required", common.ErrorValidation)
	}

	now := r.now().UTC()
	rec.LastUpdatedBy = user.Ref()
	rec.LastUpdated = now
	if recreate {
		rec.User = user.Ref()
		rec.Created = now
	}

	if err := r.store.SaveInCollection(ctx, ModulesNamespace, rec.ID, rec); err != nil {
		return models.PersistedModule{}, fmt.Errorf("save module %s: %w", rec.ID, err)
	}
	return rec, nil
}

// Update writes patch over the default module shape. Provenance the patch
// leaves unset is taken from the stored record, then from the acting user
// and the clock.
func (r *Repository) Update(ctx context.Context, patch models.ModulePatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	user, err := r.users.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("current user: %w", err)
	}
	existing, err := storage.GetInCollection[models.PersistedModule](ctx, r.store, ModulesNamespace, patch.ID)
	if err != nil {
		return fmt.Errorf("read module %s: %w", patch.ID, err)
	}

	now := r.now().UTC()
	rec := patch.Apply(models.DefaultModule())
	if patch.User == nil {
		rec.User = user.Ref()
		if existing != nil {
			rec.User = existing.User
		}
	}
	if patch.Created == nil {
		rec.Created = now
		if existing != nil {
			rec.Created = existing.Created
		}
	}
	if patch.LastTranslationSync == nil {
		rec.LastTranslationSync = now
	}

	_, err = r.save(ctx, rec, user, false)
	return err
}

// Create stores a new module made from b. The id must not be taken.
func (r *Repository) Create(ctx context.Context, b models.ModuleBuilder) error {
	if err := b.Validate(); err != nil {
		return err
	}

	existing, err := storage.GetInCollection[models.PersistedModule](ctx, r.store, ModulesNamespace, b.ID)
	if err != nil {
		return fmt.Errorf("read module %s: %w", b.ID, err)
	}
	if existing != nil {
		return fmt.Errorf("module %s: %w", b.ID, common.ErrorAlreadyExists)
	}

	user, err := r.users.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("current user: %w", err)
	}

	rec := b.Patch().Apply(models.DefaultModule())
	rec.LastTranslationSync = r.now().UTC()

	_, err = r.save(ctx, rec, user, true)
	return err
}

// Delete removes every id. Missing ids are ignored.
func (r *Repository) Delete(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := r.store.RemoveInCollection(ctx, ModulesNamespace, id); err != nil {
			return fmt.Errorf("delete module %s: %w", id, err)
		}
	}
	return nil
}

// SwapOrder exchanges the positions of two modules in the stored order.
// It is a no-op when either id is missing.
func (r *Repository) SwapOrder(ctx context.Context, id1, id2 string) error {
	err := r.store.UpdateCollection(ctx, ModulesNamespace, func(docs []json.RawMessage) ([]json.RawMessage, error) {
		swapped, changed, err := swapByID(docs, id1, id2)
		if err != nil || !changed {
			return nil, err
		}
		return swapped, nil
	})
	if err != nil {
		return fmt.Errorf("swap modules %s and %s: %w", id1, id2, err)
	}
	return nil
}

func swapByID(docs []json.RawMessage, id1, id2 string) ([]json.RawMessage, bool, error) {
	i1, i2 := -1, -1
	for i, doc := range docs {
		id, err := storage.DocumentID(doc)
		if err != nil {
			return nil, false, err
		}
		switch id {
		case id1:
			i1 = i
		case id2:
			i2 = i
		}
	}
	if i1 < 0 || i2 < 0 || i1 == i2 {
		return docs, false, nil
	}

	out := append([]json.RawMessage{}, docs...)
	out[i1], out[i2] = out[i2], out[i1]
	return out, true, nil
}

func (r *Repository) progress(ctx context.Context, user models.User) ([]models.Progress, error) {
	entries, err := storage.ListInCollection[models.Progress](ctx, r.store, ProgressNamespace(user.ID))
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	return entries, nil
}

// UpdateProgress upserts the acting user's progress on module id.
func (r *Repository) UpdateProgress(ctx context.Context, id string, lastStep int, completed bool) error {
	user, err := r.users.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("current user: %w", err)
	}

	p := models.Progress{ID: id, LastStep: lastStep, Completed: completed}
	if err := r.store.SaveInCollection(ctx, ProgressNamespace(user.ID), id, p); err != nil {
		return fmt.Errorf("save progress %s: %w", id, err)
	}
	return nil
}
