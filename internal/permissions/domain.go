package permissions

// Permission is a named capability referenced by roles through its key.
type Permission struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
	IsSystem    bool   `json:"isSystem"`
}
