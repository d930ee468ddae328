package modules

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trainingkeeper/internal/batch"
	"github.com/dmitrijs2005/trainingkeeper/internal/models"
	"github.com/dmitrijs2005/trainingkeeper/internal/storage"
	"github.com/dmitrijs2005/trainingkeeper/internal/translation"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// dictionary maps a term key to its translations by language.
type dictionary map[string]map[string]string

func (d dictionary) lookup(t models.TranslatableText) models.TranslatableText {
	return t.WithTranslations(d[t.Key])
}

// apply replaces the translations of every text node of rec. Nodes whose
// key has no translations end up with an empty map.
func (d dictionary) apply(rec models.PersistedModule) models.PersistedModule {
	rec.Name = d.lookup(rec.Name)
	contents := rec.Contents.Clone()
	contents.Welcome = d.lookup(contents.Welcome)
	for i := range contents.Steps {
		step := &contents.Steps[i]
		step.Title = d.lookup(step.Title)
		if step.Subtitle != nil {
			sub := d.lookup(*step.Subtitle)
			step.Subtitle = &sub
		}
		for j := range step.Pages {
			step.Pages[j] = d.lookup(step.Pages[j])
		}
	}
	rec.Contents = contents
	return rec
}

// SyncTranslations pulls the translations of module id from its provider
// project and stores the rewritten module. It never returns an error: the
// module is skipped when it does not exist, has no active provider or no
// provider is configured, and any failure is logged and reported as a
// degraded outcome without touching the stored record.
func (r *Repository) SyncTranslations(ctx context.Context, id string) Outcome[*models.PersistedModule] {
	logger := r.logger.With("sync_id", uuid.NewString(), "id", id)

	if r.translations == nil {
		logger.Debug(ctx, "translation sync skipped: no provider configured")
		return skipped[*models.PersistedModule](nil)
	}

	rec, err := storage.GetInCollection[models.PersistedModule](ctx, r.store, ModulesNamespace, id)
	if err != nil {
		logger.Error(ctx, "translation sync failed", "error", err)
		return failed[*models.PersistedModule](nil, err)
	}
	if rec == nil || rec.Translation.Provider != models.TranslationProviderPoEditor {
		logger.Debug(ctx, "translation sync skipped")
		return skipped[*models.PersistedModule](nil)
	}

	dict, err := r.fetchDictionary(ctx, rec.Translation.Project)
	if err != nil {
		logger.Error(ctx, "translation sync failed", "error", err)
		return failed[*models.PersistedModule](nil, err)
	}

	user, err := r.users.CurrentUser(ctx)
	if err != nil {
		logger.Error(ctx, "translation sync failed", "error", err)
		return failed[*models.PersistedModule](nil, err)
	}

	next := dict.apply(*rec)
	next.LastTranslationSync = r.now().UTC()

	saved, err := r.save(ctx, next, user, false)
	if err != nil {
		logger.Error(ctx, "translation sync failed", "error", err)
		return failed[*models.PersistedModule](nil, err)
	}

	logger.Info(ctx, "translations synced", "terms", len(dict))
	return ok(&saved)
}

type languageTerms struct {
	language string
	terms    []translation.Term
}

func (r *Repository) fetchDictionary(ctx context.Context, project string) (dictionary, error) {
	codes, err := r.translations.ListLanguages(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}

	for _, code := range codes {
		if _, err := language.Parse(code); err != nil {
			r.logger.Debug(ctx, "provider language is not a BCP 47 tag", "language", code, "error", err)
		}
	}

	fetched, err := batch.Map(ctx, r.maxConcurrency, codes, func(ctx context.Context, code string) (languageTerms, error) {
		terms, err := r.translations.ListTerms(ctx, project, code)
		if err != nil {
			return languageTerms{}, fmt.Errorf("list terms %s: %w", code, err)
		}
		return languageTerms{language: code, terms: terms}, nil
	})
	if err != nil {
		return nil, err
	}

	dict := dictionary{}
	for _, lt := range fetched {
		for _, t := range lt.terms {
			if dict[t.Term] == nil {
				dict[t.Term] = map[string]string{}
			}
			dict[t.Term][lt.language] = t.Translation
		}
	}
	return dict, nil
}
