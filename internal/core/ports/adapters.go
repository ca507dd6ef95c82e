package ports

// TokenService issues and decodes signed bearer tokens. The payload is the
// user id; expiry is the implementation's concern.
type TokenService interface {
	Generate(userID string) (string, error)
	// Decode returns the user id carried by the token, or an error when the
	// token is malformed, expired, or carries an invalid signature.
	Decode(token string) (string, error)
}

// PasswordHasher validates plaintext secrets against stored hashes.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hash string) bool
}
