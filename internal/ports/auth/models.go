package auth

// Claims is the caller identity embedded in a token.
type Claims struct {
	UserID string
	Email  string
}
