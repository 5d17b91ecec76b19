package models

// Capability names an operation class that requires a permission check.
type Capability string

const (
	// CapabilityAdmin covers user, role and global settings management.
	CapabilityAdmin Capability = "admin"
)

// roleCapabilities maps role names to the capabilities they carry.
// Roles that are not listed grant nothing beyond authentication.
var roleCapabilities = map[string][]Capability{
	"admin": {CapabilityAdmin},
}
