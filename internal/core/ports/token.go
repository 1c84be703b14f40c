package ports

// TokenIssuer mints and verifies signed session tokens. The user identifier
// is the only claim a token carries; lifetime is fixed at issuance and there
// is no server-side revocation.
type TokenIssuer interface {
	Mint(userID string) (string, error)
	Verify(token string) (string, error)
}
