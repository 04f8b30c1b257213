package user

type Role string

const (
	RoleHR       Role = "HR"        // Assigns tasks to team leads, final leave approval
	RoleTeamLead Role = "Team Lead" // Splits tasks, first-level leave approval
	RoleEmployee Role = "Employee"  // Works tasks, checks in, applies for leave
)

// ParseRole accepts the wire label of a role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleHR, RoleTeamLead, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

// MaxPasswordBytes is the longest password bcrypt compares in full. Longer
// inputs are truncated by bcrypt and must be rejected before comparing.
const MaxPasswordBytes = 72

// Identity is one entry of the static user directory.
type Identity struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Department   string `json:"department,omitempty"`
	PasswordHash string `json:"-"`
}

func (i Identity) IsHR() bool {
	return i.Role == RoleHR
}

func (i Identity) IsTeamLead() bool {
	return i.Role == RoleTeamLead
}

func (i Identity) IsEmployee() bool {
	return i.Role == RoleEmployee
}

// SameDepartment reports whether both identities belong to the same non-empty department.
func (i Identity) SameDepartment(department string) bool {
	return i.Department != "" && i.Department == department
}
