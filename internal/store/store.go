// Package store provides the in-memory backend. All four collections live
// behind one lock, which is what makes the access-control facade's critical
// sections atomic without a database.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nexus-admin/nexus/internal/accesscontrol"
	"github.com/nexus-admin/nexus/internal/blog"
	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/users"
)

// Store holds every collection of the admin console in memory.
type Store struct {
	mu sync.RWMutex

	permissions []permissions.Permission
	roles       []roles.Role
	users       []users.User
	posts       []blog.Post
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Permissions returns the permission repository view of the store.
func (s *Store) Permissions() permissions.Repository { return &permRepo{st: s} }

// Roles returns the role repository view of the store.
func (s *Store) Roles() roles.Repository { return &roleRepo{st: s} }

// Users returns the user repository view of the store.
func (s *Store) Users() users.Repository { return &userRepo{st: s} }

// Posts returns the blog repository view of the store.
func (s *Store) Posts() blog.Repository { return &postRepo{st: s} }

// AccessControl returns the facade repository view of the store.
func (s *Store) AccessControl() accesscontrol.Repository { return &acRepo{st: s} }

type permRepo struct {
	st *Store
}

func (r *permRepo) List(ctx context.Context) ([]permissions.Permission, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	out := make([]permissions.Permission, len(r.st.permissions))
	copy(out, r.st.permissions)
	return out, nil
}

func (r *permRepo) Get(ctx context.Context, id string) (permissions.Permission, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	for _, p := range r.st.permissions {
		if p.ID == id {
			return p, nil
		}
	}
	return permissions.Permission{}, fmt.Errorf("permission %s: %w", id, shared.ErrNotFound)
}

func (r *permRepo) GetByKey(ctx context.Context, key string) (permissions.Permission, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	for _, p := range r.st.permissions {
		if p.Key == key {
			return p, nil
		}
	}
	return permissions.Permission{}, fmt.Errorf("permission key %s: %w", key, shared.ErrNotFound)
}

func (r *permRepo) Insert(ctx context.Context, p permissions.Permission) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, existing := range r.st.permissions {
		if existing.Key == p.Key {
			return fmt.Errorf("permission key %q already defined: %w", p.Key, shared.ErrDuplicateKey)
		}
	}
	r.st.permissions = append(r.st.permissions, p)
	return nil
}

func (r *permRepo) Update(ctx context.Context, p permissions.Permission) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for i, existing := range r.st.permissions {
		if existing.ID == p.ID {
			r.st.permissions[i] = p
			return nil
		}
	}
	return fmt.Errorf("permission %s: %w", p.ID, shared.ErrNotFound)
}

type roleRepo struct {
	st *Store
}

func (r *roleRepo) List(ctx context.Context) ([]roles.Role, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	out := make([]roles.Role, len(r.st.roles))
	for i, role := range r.st.roles {
		out[i] = cloneRole(role)
	}
	return out, nil
}

func (r *roleRepo) Get(ctx context.Context, id string) (roles.Role, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	for _, role := range r.st.roles {
		if role.ID == id {
			return cloneRole(role), nil
		}
	}
	return roles.Role{}, fmt.Errorf("role %s: %w", id, shared.ErrNotFound)
}

func (r *roleRepo) Insert(ctx context.Context, role roles.Role) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.roles = append(r.st.roles, cloneRole(role))
	return nil
}

func (r *roleRepo) Update(ctx context.Context, role roles.Role) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for i, existing := range r.st.roles {
		if existing.ID == role.ID {
			r.st.roles[i] = cloneRole(role)
			return nil
		}
	}
	return fmt.Errorf("role %s: %w", role.ID, shared.ErrNotFound)
}

type userRepo struct {
	st *Store
}

func (r *userRepo) List(ctx context.Context, q shared.ListQuery) ([]users.User, int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	var matched []users.User
	for _, u := range r.st.users {
		if q.Search == "" || shared.ContainsFold(u.Name, q.Search) || shared.ContainsFold(u.Email, q.Search) {
			matched = append(matched, u)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := len(matched)
	start, end := q.Bounds(total)
	page := make([]users.User, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func (r *userRepo) ListAll(ctx context.Context) ([]users.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	out := make([]users.User, len(r.st.users))
	copy(out, r.st.users)
	return out, nil
}

func (r *userRepo) Get(ctx context.Context, id string) (users.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	for _, u := range r.st.users {
		if u.ID == id {
			return u, nil
		}
	}
	return users.User{}, fmt.Errorf("user %s: %w", id, shared.ErrNotFound)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (users.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	for _, u := range r.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, fmt.Errorf("user %s: %w", email, shared.ErrNotFound)
}

func (r *userRepo) Insert(ctx context.Context, u users.User) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.users = append(r.st.users, u)
	return nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for i, existing := range r.st.users {
		if existing.ID == u.ID {
			r.st.users[i] = u
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", u.ID, shared.ErrNotFound)
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for i, existing := range r.st.users {
		if existing.ID == id {
			r.st.users = append(r.st.users[:i], r.st.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *userRepo) RecordLogin(ctx context.Context, id string, at time.Time) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for i := range r.st.users {
		if r.st.users[i].ID == id {
			stamp := at
			r.st.users[i].LastLogin = &stamp
			return nil
		}
	}
	return fmt.Errorf("user %s: %w", id, shared.ErrNotFound)
}

type postRepo struct {
	st *Store
}

func (r *postRepo) List(ctx context.Context, q shared.ListQuery) ([]blog.Post, int, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	var matched []blog.Post
	for _, p := range r.st.posts {
		if q.Search == "" || shared.ContainsFold(p.Title, q.Search) || shared.ContainsFold(p.Content, q.Search) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	total := len(matched)
	start, end := q.Bounds(total)
	page := make([]blog.Post, end-start)
	for i, p := range matched[start:end] {
		page[i] = clonePost(p)
	}
	return page, total, nil
}

func (r *postRepo) ListAll(ctx context.Context) ([]blog.Post, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	out := make([]blog.Post, len(r.st.posts))
	for i, p := range r.st.posts {
		out[i] = clonePost(p)
	}
	return out, nil
}

func (r *postRepo) Get(ctx context.Context, id string) (blog.Post, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()
	for _, p := range r.st.posts {
		if p.ID == id {
			return clonePost(p), nil
		}
	}
	return blog.Post{}, fmt.Errorf("post %s: %w", id, shared.ErrNotFound)
}

func (r *postRepo) Insert(ctx context.Context, p blog.Post) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.posts = append(r.st.posts, clonePost(p))
	return nil
}

func (r *postRepo) Update(ctx context.Context, p blog.Post) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for i, existing := range r.st.posts {
		if existing.ID == p.ID {
			r.st.posts[i] = clonePost(p)
			return nil
		}
	}
	return fmt.Errorf("post %s: %w", p.ID, shared.ErrNotFound)
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for i, existing := range r.st.posts {
		if existing.ID == id {
			r.st.posts = append(r.st.posts[:i], r.st.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

// acRepo serves the access-control facade. WithTx takes the write lock for
// the whole callback, so the checks and mutations of one deletion are never
// interleaved with other writers.
type acRepo struct {
	st *Store
}

func (r *acRepo) WithTx(ctx context.Context, fn func(context.Context, accesscontrol.TxRepository) error) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	return fn(ctx, &acTx{st: r.st})
}

// acTx operates on the store internals while the write lock is already held.
type acTx struct {
	st *Store
}

func (t *acTx) RoleByID(ctx context.Context, id string) (accesscontrol.RoleRecord, error) {
	for _, role := range t.st.roles {
		if role.ID == id {
			return accesscontrol.RoleRecord{ID: role.ID, Name: role.Name, IsSystem: role.IsSystem}, nil
		}
	}
	return accesscontrol.RoleRecord{}, fmt.Errorf("role %s: %w", id, shared.ErrNotFound)
}

func (t *acTx) CountUsersWithRole(ctx context.Context, roleID string) (int, error) {
	n := 0
	for _, u := range t.st.users {
		if u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

func (t *acTx) DeleteRole(ctx context.Context, id string) error {
	for i, role := range t.st.roles {
		if role.ID == id {
			t.st.roles = append(t.st.roles[:i], t.st.roles[i+1:]...)
			return nil
		}
	}
	return nil
}

func (t *acTx) PermissionByID(ctx context.Context, id string) (accesscontrol.PermissionRecord, error) {
	for _, p := range t.st.permissions {
		if p.ID == id {
			return accesscontrol.PermissionRecord{ID: p.ID, Key: p.Key, Name: p.Name, IsSystem: p.IsSystem}, nil
		}
	}
	return accesscontrol.PermissionRecord{}, fmt.Errorf("permission %s: %w", id, shared.ErrNotFound)
}

func (t *acTx) DeletePermission(ctx context.Context, id string) error {
	for i, p := range t.st.permissions {
		if p.ID == id {
			t.st.permissions = append(t.st.permissions[:i], t.st.permissions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (t *acTx) StripPermissionKey(ctx context.Context, key string) error {
	for i := range t.st.roles {
		kept := t.st.roles[i].Permissions[:0:0]
		for _, k := range t.st.roles[i].Permissions {
			if k != key {
				kept = append(kept, k)
			}
		}
		if kept == nil {
			kept = []string{}
		}
		t.st.roles[i].Permissions = kept
	}
	return nil
}

func cloneRole(role roles.Role) roles.Role {
	perms := make([]string, len(role.Permissions))
	copy(perms, role.Permissions)
	role.Permissions = perms
	return role
}

func clonePost(p blog.Post) blog.Post {
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	p.Tags = tags
	return p
}
