// Package modules is the training module repository. It merges stored and
// factory-bundled modules, filters them by permission and compatibility,
// tracks per-user progress, moves modules in and out of archives and syncs
// their texts with a translation provider.
//
// The repository holds no mutable state and is safe for concurrent use.
// Writes read and replace whole records without compare-and-swap, so
// concurrent writers to the same record race and the last one wins.
package modules

import (
	"time"

	"github.com/dmitrijs2005/trainingkeeper/internal/archive"
	"github.com/dmitrijs2005/trainingkeeper/internal/assets"
	"github.com/dmitrijs2005/trainingkeeper/internal/identity"
	"github.com/dmitrijs2005/trainingkeeper/internal/instance"
	"github.com/dmitrijs2005/trainingkeeper/internal/logging"
	"github.com/dmitrijs2005/trainingkeeper/internal/storage"
	"github.com/dmitrijs2005/trainingkeeper/internal/translation"
)

// ModulesNamespace is the collection holding every module, in display order.
const ModulesNamespace = "training-modules"

// ProgressNamespace is the collection holding the progress of one user.
func ProgressNamespace(userID string) string {
	return "progress/" + userID
}

const defaultMaxConcurrency = 4

// Deps are the collaborators of a Repository. Assets and Translations may
// be nil: bootstrap and translation sync are then disabled.
type Deps struct {
	Store          *storage.Client
	Assets         assets.Fetcher
	Codec          archive.Codec
	Translations   translation.Provider
	Users          identity.Provider
	Instance       instance.Context
	Logger         logging.Logger
	Defaults       DefaultSet
	MaxConcurrency int
	Now            func() time.Time
}

type Repository struct {
	store          *storage.Client
	assets         assets.Fetcher
	codec          archive.Codec
	translations   translation.Provider
	users          identity.Provider
	instance       instance.Context
	logger         logging.Logger
	defaults       DefaultSet
	maxConcurrency int
	now            func() time.Time
}

func NewRepository(d Deps) *Repository {
	r := &Repository{
		store:          d.Store,
		assets:         d.Assets,
		codec:          d.Codec,
		translations:   d.Translations,
		users:          d.Users,
		instance:       d.Instance,
		logger:         d.Logger,
		defaults:       d.Defaults,
		maxConcurrency: d.MaxConcurrency,
		now:            d.Now,
	}
	if r.codec == nil {
		r.codec = archive.NewZipCodec()
	}
	if r.logger == nil {
		r.logger = logging.NewNopLogger()
	}
	if r.maxConcurrency <= 0 {
		r.maxConcurrency = defaultMaxConcurrency
	}
	if r.now == nil {
		r.now = time.Now
	}
	r.logger = r.logger.With("component", "modules")
	return r
}

// DefaultSet is the immutable set of module ids that can be bootstrapped
// from bundled assets.
type DefaultSet struct {
	ids []string
	set map[string]struct{}
}

func NewDefaultSet(ids ...string) DefaultSet {
	d := DefaultSet{set: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if _, dup := d.set[id]; dup {
			continue
		}
		d.set[id] = struct{}{}
		d.ids = append(d.ids, id)
	}
	return d
}

func (d DefaultSet) Contains(id string) bool {
	_, ok := d.set[id]
	return ok
}

// IDs returns the default ids in declaration order.
func (d DefaultSet) IDs() []string {
	return append([]string{}, d.ids...)
}

// Missing returns the default ids absent from present, in declaration order.
func (d DefaultSet) Missing(present []string) []string {
	seen := make(map[string]struct{}, len(present))
	for _, id := range present {
		seen[id] = struct{}{}
	}
	out := []string{}
	for _, id := range d.ids {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
