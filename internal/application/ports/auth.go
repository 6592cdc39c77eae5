package ports

// TokenVerifier validates an access token and extracts the subject user id.
type TokenVerifier interface {
	VerifyAccessToken(tokenString string) (userID string, err error)
}
