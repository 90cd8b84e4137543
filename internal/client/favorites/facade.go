package favorites

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/pokodex/internal/client/models"
	"github.com/dmitrijs2005/pokodex/internal/logging"
)

const DefaultPageSize = 20

// State is what the CLI renders.
type State struct {
	Favorites  []models.FavoriteEntry
	TotalCount int
	Loading    bool
	Err        error
	Page       int
	PageSize   int
}

// Facade wraps one Store and keeps the last loaded page in memory. Save and
// Remove patch that page from the known effect of the call instead of
// re-fetching, so it can drift from the backend until the next Load or
// Refresh.
//
// State is guarded by mu; store calls run without it. A Load that finishes
// after a newer one overwrites the newer result.
type Facade struct {
	store  Store
	logger logging.Logger

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

func NewFacade(store Store, logger logging.Logger) *Facade {
	f := &Facade{
		store:     store,
		logger:    logger.With("module", "favorites"),
		listeners: make(map[int]func(State)),
	}
	f.state = zeroState()
	return f
}

func zeroState() State {
	return State{Favorites: []models.FavoriteEntry{}, Page: 1, PageSize: DefaultPageSize}
}

// Snapshot returns a copy of the current state.
func (f *Facade) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Facade) snapshotLocked() State {
	s := f.state
	s.Favorites = slices.Clone(f.state.Favorites)
	return s
}

// Subscribe registers fn to be called with a snapshot after every state
// change. The returned func unregisters it.
func (f *Facade) Subscribe(fn func(State)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

// update applies fn under the lock and notifies listeners after releasing it.
func (f *Facade) update(fn func(s *State)) {
	f.mu.Lock()
	fn(&f.state)
	snap := f.snapshotLocked()
	ls := make([]func(State), 0, len(f.listeners))
	for _, l := range f.listeners {
		ls = append(ls, l)
	}
	f.mu.Unlock()

	for _, l := range ls {
		l(snap)
	}
}

func (f *Facade) begin() {
	f.update(func(s *State) {
		s.Loading = true
		s.Err = nil
	})
}

func (f *Facade) fail(ctx context.Context, op string, err error) {
	f.logger.Error(ctx, "favorites operation failed", "op", op, "error", err)
}

func (f *Facade) Save(ctx context.Context, e models.FavoriteEntry) error {
	f.begin()
	saved, err := f.store.Add(ctx, e)
	if err != nil {
		f.fail(ctx, "save", err)
	}
	f.update(func(s *State) {
		s.Loading = false
		if err != nil {
			s.Err = err
			return
		}
		s.Favorites = append(s.Favorites, saved)
		s.TotalCount++
	})
	return err
}

// Remove drops name from the page and takes the store's removed count off
// the total.
func (f *Facade) Remove(ctx context.Context, name string) error {
	f.begin()
	removed, err := f.store.Remove(ctx, name)
	if err != nil {
		f.fail(ctx, "remove", err)
	}
	f.update(func(s *State) {
		s.Loading = false
		if err != nil {
			s.Err = err
			return
		}
		s.Favorites = slices.DeleteFunc(s.Favorites, func(e models.FavoriteEntry) bool {
			return e.Name == name
		})
		s.TotalCount = max(s.TotalCount-removed, 0)
	})
	return err
}

// IsFavorite reports false on failure and records the error. It does not
// touch Loading.
func (f *Facade) IsFavorite(ctx context.Context, name string) bool {
	f.update(func(s *State) { s.Err = nil })
	ok, err := f.store.IsFavorite(ctx, name)
	if err != nil {
		f.fail(ctx, "isFavorite", err)
		f.update(func(s *State) { s.Err = err })
		return false
	}
	return ok
}

func (f *Facade) Load(ctx context.Context, page, pageSize int) error {
	f.begin()
	p, err := f.store.List(ctx, page, pageSize)
	if err != nil {
		f.fail(ctx, "load", err)
	}
	f.update(func(s *State) {
		s.Loading = false
		if err != nil {
			s.Err = err
			return
		}
		s.Favorites = p.Favorites
		s.TotalCount = p.Total
		s.Page = page
		s.PageSize = pageSize
	})
	return err
}

// Refresh re-loads the current cursor.
func (f *Facade) Refresh(ctx context.Context) error {
	s := f.Snapshot()
	return f.Load(ctx, s.Page, s.PageSize)
}

// Reset restores the zero state. Listeners stay registered.
func (f *Facade) Reset() {
	f.update(func(s *State) { *s = zeroState() })
}
