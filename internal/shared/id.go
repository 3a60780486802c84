package shared

import "github.com/google/uuid"

// NewID returns a collision-resistant identifier with a readable entity
// prefix, e.g. "user-2c3f…". The prefix mirrors the historic ID shape so
// seeded fixtures and generated records sort and read alike.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
