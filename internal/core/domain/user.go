package domain

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleStudent:
		return true
	}
	return false
}

type User struct {
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
}

// UserProfile is the public view of a User. It has no password field so
// listings built from it can never leak credentials.
type UserProfile struct {
	Role Role   `json:"role"`
	Name string `json:"name"`
}

func (u User) Profile() UserProfile {
	return UserProfile{Role: u.Role, Name: u.Name}
}
