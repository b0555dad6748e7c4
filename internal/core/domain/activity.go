package domain

import "slices"

type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// IsEnrolled reports whether email is on the roster.
func (a *Activity) IsEnrolled(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Enroll appends email to the roster. The roster size is not checked
// against MaxParticipants.
func (a *Activity) Enroll(email string) {
	a.Participants = append(a.Participants, email)
}

// Withdraw removes email from the roster, keeping the order of the rest.
func (a *Activity) Withdraw(email string) {
	a.Participants = slices.DeleteFunc(a.Participants, func(p string) bool { return p == email })
}

// Clone returns a deep copy safe to hand out of a store.
func (a *Activity) Clone() Activity {
	c := *a
	c.Participants = slices.Clone(a.Participants)
	if c.Participants == nil {
		c.Participants = []string{}
	}
	return c
}
