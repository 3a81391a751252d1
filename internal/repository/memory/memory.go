// Package memory implements repository.Store entirely in process memory.
//
// It backs the service and handler tests and the `--driver memory` mode of
// the server. All three tables share one lock, so a cascading delete is a
// single atomic step just like it is in the relational backends.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// table holds the rows of one record type in insertion order.
type table[T model.Entity] struct {
	next  int64
	order []int64
	rows  map[int64]T
}

func newTable[T model.Entity]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) insert(rec T, assign func(T, int64) T) T {
	t.next++
	rec = assign(rec, t.next)
	t.rows[t.next] = rec
	t.order = append(t.order, t.next)
	return rec
}

func (t *table[T]) remove(id int64) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	t.order = slices.DeleteFunc(t.order, func(v int64) bool { return v == id })
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

// Store is an in-memory backend. The zero value is not usable; call New.
type Store struct {
	mu       sync.RWMutex
	users    *table[model.User]
	posts    *table[model.Post]
	comments *table[model.Comment]
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    newTable[model.User](),
		posts:    newTable[model.Post](),
		comments: newTable[model.Comment](),
	}
}

func (s *Store) Users() repository.Gateway[model.User] {
	return &gateway[model.User]{
		store:  s,
		table:  func(s *Store) *table[model.User] { return s.users },
		assign: func(u model.User, id int64) model.User { u.ID = id; return u },
		check:  (*Store).checkUser,
		drop:   (*Store).dropUser,
	}
}

func (s *Store) Posts() repository.Gateway[model.Post] {
	return &gateway[model.Post]{
		store:  s,
		table:  func(s *Store) *table[model.Post] { return s.posts },
		assign: func(p model.Post, id int64) model.Post { p.ID = id; return p },
		drop:   (*Store).dropPost,
	}
}

func (s *Store) Comments() repository.Gateway[model.Comment] {
	return &gateway[model.Comment]{
		store:  s,
		table:  func(s *Store) *table[model.Comment] { return s.comments },
		assign: func(c model.Comment, id int64) model.Comment { c.ID = id; return c },
		drop:   func(s *Store, id int64) { s.comments.remove(id) },
	}
}

// Close is a no-op; it exists to satisfy repository.Store.
func (s *Store) Close() error { return nil }

// checkUser enforces the UNIQUE(username) and UNIQUE(email) constraints.
// Caller holds s.mu.
func (s *Store) checkUser(u model.User) error {
	for _, existing := range s.users.rows {
		if existing.Username == u.Username {
			return apperror.Conflict("user", "username already exists")
		}
		if existing.Email == u.Email {
			return apperror.Conflict("user", "email already exists")
		}
	}
	return nil
}

// dropUser removes a user, every post they wrote (with its comments) and
// every comment they wrote. Caller holds s.mu.
func (s *Store) dropUser(id int64) {
	for _, p := range s.posts.all() {
		if p.AuthorID == id {
			s.dropPost(p.ID)
		}
	}
	for _, c := range s.comments.all() {
		if c.AuthorID == id {
			s.comments.remove(c.ID)
		}
	}
	s.users.remove(id)
}

// dropPost removes a post and its comments. Caller holds s.mu.
func (s *Store) dropPost(id int64) {
	for _, c := range s.comments.all() {
		if c.PostID == id {
			s.comments.remove(c.ID)
		}
	}
	s.posts.remove(id)
}

// gateway adapts one table of the store to repository.Gateway.
type gateway[T model.Entity] struct {
	store  *Store
	table  func(*Store) *table[T]
	assign func(T, int64) T
	check  func(*Store, T) error // optional constraint check before insert
	drop   func(*Store, int64)
}

func (g *gateway[T]) Create(_ context.Context, rec T) (T, error) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()

	if g.check != nil {
		if err := g.check(g.store, rec); err != nil {
			var zero T
			return zero, err
		}
	}
	return g.table(g.store).insert(rec, g.assign), nil
}

func (g *gateway[T]) GetByID(_ context.Context, id int64) (T, bool, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	rec, ok := g.table(g.store).rows[id]
	return rec, ok, nil
}

func (g *gateway[T]) GetAll(_ context.Context) ([]T, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	return g.table(g.store).all(), nil
}

func (g *gateway[T]) Delete(_ context.Context, id int64) error {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()

	g.drop(g.store, id)
	return nil
}
