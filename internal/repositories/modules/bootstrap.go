package modules

import (
	"context"

	"github.com/dmitrijs2005/trainingkeeper/internal/batch"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
)

// fetchDefault downloads and decodes the bundled archive of a default
// module. It returns nil when the module is unavailable for any reason.
func (r *Repository) fetchDefault(ctx context.Context, id string) []models.PersistedModule {
	if !r.defaults.Contains(id) || r.assets == nil {
		return nil
	}

	data, err := r.assets.Fetch(ctx, id)
	if err != nil {
		r.logger.Warn(ctx, "default module unavailable", "id", id, "error", err)
		return nil
	}

	mods, err := r.codec.Decode([][]byte{data})
	if err != nil {
		r.logger.Warn(ctx, "default module archive is broken", "id", id, "error", err)
		return nil
	}
	if len(mods) == 0 {
		r.logger.Warn(ctx, "default module archive is empty", "id", id)
		return nil
	}
	return mods
}

// persistDefault stores every module of a bundled archive in recreate mode
// and returns the one named id, falling back to the first. It returns nil
// when nothing could be stored.
func (r *Repository) persistDefault(ctx context.Context, id string, mods []models.PersistedModule, user models.User) *models.PersistedModule {
	var found *models.PersistedModule
	for _, mod := range mods {
		saved, err := r.save(ctx, mod, user, true)
		if err != nil {
			r.logger.Warn(ctx, "failed to store default module", "id", id, "module", mod.ID, "error", err)
			continue
		}
		if found == nil || (saved.ID == id && found.ID != id) {
			found = &saved
		}
	}
	return found
}

// importDefaultModule fetches the bundled module id and stores it,
// overwriting any stored record with the same id.
func (r *Repository) importDefaultModule(ctx context.Context, id string, user models.User) *models.PersistedModule {
	mods := r.fetchDefault(ctx, id)
	if mods == nil {
		return nil
	}
	return r.persistDefault(ctx, id, mods, user)
}

// bootstrap materializes the default modules missing from stored. Archives
// are fetched concurrently and stored one by one in default id order so the
// collection order is deterministic.
func (r *Repository) bootstrap(ctx context.Context, stored []models.PersistedModule, user models.User) []models.PersistedModule {
	present := make([]string, len(stored))
	for i, m := range stored {
		present[i] = m.ID
	}
	missing := r.defaults.Missing(present)
	if len(missing) == 0 || r.assets == nil {
		return nil
	}

	fetched, err := batch.Map(ctx, r.maxConcurrency, missing, func(ctx context.Context, id string) ([]models.PersistedModule, error) {
		return r.fetchDefault(ctx, id), nil
	})
	if err != nil {
		r.logger.Warn(ctx, "bootstrap interrupted", "error", err)
		return nil
	}

	out := []models.PersistedModule{}
	for i, id := range missing {
		if fetched[i] == nil {
			continue
		}
		if mod := r.persistDefault(ctx, id, fetched[i], user); mod != nil {
			r.logger.Info(ctx, "default module bootstrapped", "id", id)
			out = append(out, *mod)
		}
	}
	return out
}
