package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/trainingkeeper/internal/common"
	"github.com/dmitrijs2005/trainingkeeper/internal/filex"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
	"github.com/dmitrijs2005/trainingkeeper/internal/repositories/modules"
)

func (a *App) list(ctx context.Context) error {
	out := a.repo.ListOutcome(ctx)
	if !out.OK() {
		a.logger.Warn(ctx, "module list is incomplete", "status", out.Status.String(), "error", out.Err)
	}
	return a.render(out.Value, func() string { return moduleTable(out.Value) })
}

func (a *App) get(ctx context.Context, id string) error {
	m, err := a.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("module %s: %w", id, common.ErrorNotFound)
	}
	return a.render(m, func() string { return moduleDetail(*m) })
}

func (a *App) create(ctx context.Context, id, name, title, description string) error {
	b := models.ModuleBuilder{ID: id, Name: name, Title: title, Description: description}
	if err := a.repo.Create(ctx, b); err != nil {
		return err
	}
	a.printf("created %s\n", id)
	return nil
}

func (a *App) update(ctx context.Context, path string) error {
	files, err := filex.ReadFiles(path)
	if err != nil {
		return err
	}

	var patch models.ModulePatch
	if err := json.Unmarshal(files[0], &patch); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrorValidation, path, err)
	}

	if err := a.repo.Update(ctx, patch); err != nil {
		return err
	}
	a.printf("updated %s\n", patch.ID)
	return nil
}

func (a *App) delete(ctx context.Context, ids []string) error {
	if err := a.repo.Delete(ctx, ids); err != nil {
		return err
	}
	a.printf("deleted %s\n", strings.Join(ids, ", "))
	return nil
}

func (a *App) swap(ctx context.Context, id1, id2 string) error {
	if err := a.repo.SwapOrder(ctx, id1, id2); err != nil {
		return err
	}
	a.printf("swapped %s and %s\n", id1, id2)
	return nil
}

func (a *App) progress(ctx context.Context, id, step string, rest []string) error {
	lastStep, err := strconv.Atoi(step)
	if err != nil || lastStep < 0 {
		return usage(fmt.Sprintf("lastStep must be a non-negative integer, got %q", step))
	}

	completed := false
	if len(rest) > 0 {
		if completed, err = strconv.ParseBool(rest[0]); err != nil {
			return usage(fmt.Sprintf("completed must be a boolean, got %q", rest[0]))
		}
	}

	if err := a.repo.UpdateProgress(ctx, id, lastStep, completed); err != nil {
		return err
	}
	a.printf("progress of %s: step %d, completed %t\n", id, lastStep, completed)
	return nil
}

func (a *App) importArchives(ctx context.Context, paths []string) error {
	archives, err := filex.ReadFiles(paths...)
	if err != nil {
		return err
	}

	saved, err := a.repo.Import(ctx, archives)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(saved))
	for _, m := range saved {
		ids = append(ids, m.ID)
	}
	a.printf("imported %d module(s): %s\n", len(ids), strings.Join(ids, ", "))
	return nil
}

func (a *App) export(ctx context.Context, path string, ids []string) error {
	data, err := a.repo.Export(ctx, ids)
	if err != nil {
		return err
	}
	if err := filex.WriteFile(path, data); err != nil {
		return err
	}
	a.printf("exported to %s\n", path)
	return nil
}

func (a *App) reset(ctx context.Context, ids []string) error {
	if err := a.repo.ResetDefaultValue(ctx, ids); err != nil {
		return err
	}
	a.printf("reset %s\n", strings.Join(ids, ", "))
	return nil
}

func (a *App) sync(ctx context.Context, id string) error {
	out := a.repo.SyncTranslations(ctx, id)
	switch out.Status {
	case modules.StatusOK:
		a.printf("synced %s\n", id)
		return nil
	case modules.StatusSkipped:
		a.printf("nothing to sync for %s\n", id)
		return nil
	default:
		return fmt.Errorf("sync %s: %s: %w", id, out.Status, out.Err)
	}
}
