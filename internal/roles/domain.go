package roles

// Role groups permission keys under a name. The permission list is stored in
// order but treated as a set for membership checks.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	IsSystem    bool     `json:"isSystem"`
}

// HasPermission reports set membership of a permission key.
func (r Role) HasPermission(key string) bool {
	for _, k := range r.Permissions {
		if k == key {
			return true
		}
	}
	return false
}
