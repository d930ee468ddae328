package modules

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trainingkeeper/internal/batch"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
	"github.com/dmitrijs2005/trainingkeeper/internal/permissions"
	"github.com/dmitrijs2005/trainingkeeper/internal/storage"
)

// List returns the modules visible to the acting user. It never fails: any
// error yields an empty list. Use ListOutcome to tell why.
func (r *Repository) List(ctx context.Context) []models.TrainingModule {
	return r.ListOutcome(ctx).Value
}

// ListOutcome is List with the failure classification. The value is never
// nil.
func (r *Repository) ListOutcome(ctx context.Context) (out Outcome[[]models.TrainingModule]) {
	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("list panicked: %v", p)
			r.logger.Error(ctx, "list failed", "error", err)
			out = failed([]models.TrainingModule{}, err)
		}
	}()

	mods, err := r.list(ctx)
	if err != nil {
		r.logger.Warn(ctx, "list degraded to empty result", "error", err)
		return failed([]models.TrainingModule{}, err)
	}
	return ok(mods)
}

func (r *Repository) list(ctx context.Context) ([]models.TrainingModule, error) {
	stored, err := storage.ListInCollection[models.PersistedModule](ctx, r.store, ModulesNamespace)
	if err != nil {
		return nil, fmt.Errorf("read modules: %w", err)
	}

	user, err := r.users.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	merged := mergeByID(stored, r.bootstrap(ctx, stored, user))

	bc, err := r.newBuildContext(ctx, user)
	if err != nil {
		return nil, err
	}

	visible := make([]models.PersistedModule, 0, len(merged))
	for _, rec := range merged {
		if permissions.Authorize(rec, user, permissions.Read) {
			visible = append(visible, rec)
		}
	}

	return batch.Map(ctx, r.maxConcurrency, visible, func(ctx context.Context, rec models.PersistedModule) (models.TrainingModule, error) {
		return r.buildDomainModel(ctx, rec, bc)
	})
}

// mergeByID concatenates the lists keeping the first record of every id.
func mergeByID(lists ...[]models.PersistedModule) []models.PersistedModule {
	seen := make(map[string]struct{})
	out := []models.PersistedModule{}
	for _, list := range lists {
		for _, rec := range list {
			if _, dup := seen[rec.ID]; dup {
				continue
			}
			seen[rec.ID] = struct{}{}
			out = append(out, rec)
		}
	}
	return out
}

// Get returns the module with the given id, bootstrapping it when it is a
// missing default. It returns (nil, nil) when the module does not exist.
// Unlike List, Get does not check read access.
func (r *Repository) Get(ctx context.Context, id string) (*models.TrainingModule, error) {
	rec, err := storage.GetInCollection[models.PersistedModule](ctx, r.store, ModulesNamespace, id)
	if err != nil {
		return nil, fmt.Errorf("read module %s: %w", id, err)
	}

	user, err := r.users.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	if rec == nil {
		rec = r.importDefaultModule(ctx, id, user)
	}
	if rec == nil {
		return nil, nil
	}

	bc, err := r.newBuildContext(ctx, user)
	if err != nil {
		return nil, err
	}

	mod, err := r.buildDomainModel(ctx, *rec, bc)
	if err != nil {
		return nil, err
	}
	return &mod, nil
}
