package model

// User is a registered account. Records are created at signup and never
// mutated or deleted. Password is stored in plaintext.
type User struct {
	Username string
	Password string
	IsAdmin  bool
}

// Session is the authenticated caller of an operation.
type Session struct {
	Username string
	IsAdmin  bool
}
