package shared

// Core platform permission keys, seeded at initialization as system permissions.
const (
	PermUserRead   = "user:read"
	PermUserWrite  = "user:write"
	PermUserDelete = "user:delete"

	PermRoleRead  = "role:read"
	PermRoleWrite = "role:write"

	PermSystemSettings = "system:settings"

	PermBlogRead  = "blog:read"
	PermBlogWrite = "blog:write"
)

// CoreScopes lists every seeded system permission key.
func CoreScopes() []string {
	return []string{
		PermUserRead,
		PermUserWrite,
		PermUserDelete,
		PermRoleRead,
		PermRoleWrite,
		PermSystemSettings,
		PermBlogRead,
		PermBlogWrite,
	}
}
