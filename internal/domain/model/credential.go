package model

// CredentialEntry is one row of the admin credential view.
type CredentialEntry struct {
	KeyName    string
	Label      string
	Value      string
	Configured bool
}

// CredentialView is what a caller may see of the credential map. Restricted
// views carry no entries.
type CredentialView struct {
	Restricted bool
	Entries    []CredentialEntry
}
