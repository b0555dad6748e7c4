package mocks

import "github.com/mergington/high-school/activities-service/internal/core/domain"

var (
	Admin   = domain.User{Email: "admin@mergington.edu", Password: "adminpass", Role: domain.RoleAdmin, Name: "Admin User"}
	Staff   = domain.User{Email: "teacher@mergington.edu", Password: "teachpass", Role: domain.RoleStaff, Name: "Teacher T."}
	Student = domain.User{Email: "student@mergington.edu", Password: "studpass", Role: domain.RoleStudent, Name: "Student S."}
)

// TestActivity returns a small activity with one enrolled participant.
func TestActivity(name string) domain.Activity {
	return domain.Activity{
		Name:            name,
		Description:     "Test activity",
		Schedule:        "Mondays, 3:00 PM - 4:00 PM",
		MaxParticipants: 2,
		Participants:    []string{"existing@mergington.edu"},
	}
}
