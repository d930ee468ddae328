package models

type UserRole struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Authorities []string `json:"authorities"`
}

// User is the acting user as seen by the authorization checks.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	UserRoles  []UserRole `json:"userRoles"`
	UserGroups []NamedRef `json:"userGroups"`
}

// Authorities flattens the authorities of every role.
func (u User) Authorities() []string {
	var out []string
	for _, role := range u.UserRoles {
		out = append(out, role.Authorities...)
	}
	return out
}

func (u User) Ref() NamedRef {
	return NamedRef{ID: u.ID, Name: u.Name}
}

// InGroup reports whether the user belongs to the group with the given id.
func (u User) InGroup(id string) bool {
	for _, g := range u.UserGroups {
		if g.ID == id {
			return true
		}
	}
	return false
}
