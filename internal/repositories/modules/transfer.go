package modules

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trainingkeeper/internal/models"
	"github.com/dmitrijs2005/trainingkeeper/internal/storage"
)

// Import decodes the archives and stores every module in recreate mode,
// resetting its provenance to the acting user and now. Modules are stored
// in archive order; the first failure stops the import.
func (r *Repository) Import(ctx context.Context, archives [][]byte) ([]models.PersistedModule, error) {
	mods, err := r.codec.Decode(archives)
	if err != nil {
		return nil, fmt.Errorf("decode archives: %w", err)
	}

	user, err := r.users.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	out := make([]models.PersistedModule, 0, len(mods))
	for _, mod := range mods {
		saved, err := r.save(ctx, mod, user, true)
		if err != nil {
			return out, err
		}
		out = append(out, saved)
	}
	r.logger.Info(ctx, "modules imported", "count", len(out))
	return out, nil
}

// Export encodes the stored modules with the given ids. Ids that are not
// stored are passed to the codec as nil entries.
func (r *Repository) Export(ctx context.Context, ids []string) ([]byte, error) {
	stored, err := storage.ListInCollection[models.PersistedModule](ctx, r.store, ModulesNamespace)
	if err != nil {
		return nil, fmt.Errorf("read modules: %w", err)
	}

	byID := make(map[string]*models.PersistedModule, len(stored))
	for i := range stored {
		byID[stored[i].ID] = &stored[i]
	}

	mods := make([]*models.PersistedModule, len(ids))
	for i, id := range ids {
		mods[i] = byID[id]
	}

	data, err := r.codec.Encode(mods)
	if err != nil {
		return nil, fmt.Errorf("encode archive: %w", err)
	}
	return data, nil
}

// ResetDefaultValue restores the bundled content of every default id,
// overwriting stored edits. Other ids are ignored, as are defaults whose
// bundle cannot be fetched.
func (r *Repository) ResetDefaultValue(ctx context.Context, ids []string) error {
	user, err := r.users.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("current user: %w", err)
	}

	for _, id := range ids {
		if !r.defaults.Contains(id) {
			continue
		}
		if r.importDefaultModule(ctx, id, user) != nil {
			r.logger.Info(ctx, "default module restored", "id", id)
		}
	}
	return nil
}
