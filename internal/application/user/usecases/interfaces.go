package usecases

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type TokenIssuer interface {
	Generate(userID, userName string) (*TokenPair, error)
}
