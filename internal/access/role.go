package access

import "taskboard/internal/model"

// Role is the effective privilege of a caller on a board. The order matters:
// each role includes everything the roles below it may do.
type Role int

const (
	None Role = iota
	Viewer
	Editor
	Owner
)

func (r Role) String() string {
	switch r {
	case Owner:
		return "owner"
	case Editor:
		return model.RoleEditor
	case Viewer:
		return model.RoleViewer
	default:
		return "none"
	}
}

// AtLeast reports whether r grants everything min grants.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// ParseMemberRole maps a stored or client-supplied membership role string.
// Only editor and viewer are grantable; ownership is implicit from the
// workspace and never appears as a membership row.
func ParseMemberRole(s string) (Role, bool) {
	switch s {
	case model.RoleEditor:
		return Editor, true
	case model.RoleViewer:
		return Viewer, true
	default:
		return None, false
	}
}
