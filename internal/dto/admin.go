package dto

// Admin is the caller identity taken from a verified Firebase ID token.
type Admin struct {
	UID   string
	Email string
}
