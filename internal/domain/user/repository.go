package user

// Directory is the immutable email to identity lookup table loaded at startup.
type Directory interface {
	GetByEmail(email string) (Identity, error)
	ListByRole(role Role) []Identity
	ListMembers(department string) []Identity
	FindMember(department string, name string) (Identity, error)
	TeamLeadsOf(department string) []Identity
	All() []Identity
}
