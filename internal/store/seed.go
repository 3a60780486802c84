package store

import (
	"time"

	"github.com/nexus-admin/nexus/internal/blog"
	"github.com/nexus-admin/nexus/internal/permissions"
	"github.com/nexus-admin/nexus/internal/roles"
	"github.com/nexus-admin/nexus/internal/shared"
	"github.com/nexus-admin/nexus/internal/users"
)

// Seed loads the bootstrap dataset: the core system permissions, the two
// starter roles and a pair of accounts and posts to work with on first run.
func Seed(st *Store) {
	now := time.Now().UTC()

	st.mu.Lock()
	defer st.mu.Unlock()

	st.permissions = []permissions.Permission{
		{ID: "perm-1", Key: shared.PermUserRead, Name: "View Users", Description: "Can view the user list and profiles", Group: "User Management", IsSystem: true},
		{ID: "perm-2", Key: shared.PermUserWrite, Name: "Manage Users", Description: "Can create and edit users", Group: "User Management", IsSystem: true},
		{ID: "perm-3", Key: shared.PermUserDelete, Name: "Delete Users", Description: "Can remove users permanently", Group: "User Management", IsSystem: true},
		{ID: "perm-4", Key: shared.PermRoleRead, Name: "View Roles", Description: "Can view roles and their permissions", Group: "Role Management", IsSystem: true},
		{ID: "perm-5", Key: shared.PermRoleWrite, Name: "Manage Roles", Description: "Can create and edit roles", Group: "Role Management", IsSystem: true},
		{ID: "perm-6", Key: shared.PermSystemSettings, Name: "System Settings", Description: "Can change platform configuration", Group: "System", IsSystem: true},
		{ID: "perm-7", Key: shared.PermBlogRead, Name: "View Blog", Description: "Can view blog posts", Group: "Blog Management", IsSystem: true},
		{ID: "perm-8", Key: shared.PermBlogWrite, Name: "Manage Blog", Description: "Can create and edit blog posts", Group: "Blog Management", IsSystem: true},
	}

	st.roles = []roles.Role{
		{
			ID:          "role-admin",
			Name:        "Administrator",
			Description: "Full access to every part of the platform",
			Permissions: shared.CoreScopes(),
			IsSystem:    true,
		},
		{
			ID:          "role-manager",
			Name:        "Content Manager",
			Description: "Manages users and blog content",
			Permissions: []string{
				shared.PermUserRead,
				shared.PermUserWrite,
				shared.PermUserDelete,
				shared.PermBlogRead,
				shared.PermBlogWrite,
			},
			IsSystem: false,
		},
	}

	st.users = []users.User{
		{
			ID:        "user-admin",
			Email:     "admin@nexus.com",
			Name:      "Admin User",
			RoleID:    "role-admin",
			Status:    users.StatusActive,
			Bio:       "Platform administrator",
			CreatedAt: now.Add(-72 * time.Hour),
		},
		{
			ID:        "user-demo",
			Email:     "demo@nexus.com",
			Name:      "Demo Manager",
			RoleID:    "role-manager",
			Status:    users.StatusActive,
			Bio:       "Demo content manager account",
			CreatedAt: now.Add(-48 * time.Hour),
		},
	}

	st.posts = []blog.Post{
		{
			ID:        "blog-1",
			Title:     "Welcome to the Nexus Admin Console",
			Excerpt:   "A quick tour of the console and what it can do.",
			Content:   "The Nexus admin console manages users, roles, permissions and blog content from a single place.",
			AuthorID:  "user-admin",
			Status:    blog.StatusPublished,
			Tags:      []string{"system", "update"},
			CreatedAt: now.Add(-48 * time.Hour),
			UpdatedAt: now.Add(-48 * time.Hour),
		},
		{
			ID:        "blog-2",
			Title:     "Roadmap Draft",
			Excerpt:   "Early notes on upcoming features.",
			Content:   "Planned work includes richer dashboards and scheduled publishing.",
			AuthorID:  "user-demo",
			Status:    blog.StatusDraft,
			Tags:      []string{"planning", "roadmap"},
			CreatedAt: now.Add(-24 * time.Hour),
			UpdatedAt: now.Add(-24 * time.Hour),
		},
	}
}
