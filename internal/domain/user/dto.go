package user

// IdentityResponse represents the current user in API responses
type IdentityResponse struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
}

func NewIdentityResponse(i Identity) IdentityResponse {
	return IdentityResponse{
		Email:      i.Email,
		Name:       i.Name,
		Role:       i.Role,
		Department: i.Department,
	}
}

// MemberResponse is one row of a team listing
type MemberResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

func NewMemberResponses(ids []Identity) []MemberResponse {
	out := make([]MemberResponse, 0, len(ids))
	for _, i := range ids {
		out = append(out, MemberResponse{Name: i.Name, Email: i.Email, Role: i.Role, Department: i.Department})
	}
	return out
}
