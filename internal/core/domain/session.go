package domain

// Session binds an opaque token to the email of the user who logged in.
// The email is a weak reference: deleting the user leaves the session in
// place, and resolving it fails from then on.
type Session struct {
	Token string
	Email string
}
