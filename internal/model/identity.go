package model

const RoleAdmin = "ADMIN"

// Identity is the caller as established by the JWT middleware. A zero
// Identity is an anonymous visitor.
type Identity struct {
	ID    string
	Roles []string
}

func (i Identity) Known() bool {
	return i.ID != ""
}

func (i Identity) IsAdmin() bool {
	for _, r := range i.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}
