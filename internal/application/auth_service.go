package application

import (
	"crypto/subtle"
	"errors"
)

// ErrInvalidCredentials is the only login failure. It never says which
// field was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService checks the single admin credential pair.
type AuthService struct {
	email    string
	password string
}

func NewAuthService(email, password string) *AuthService {
	return &AuthService{email: email, password: password}
}

// Login succeeds only on an exact match of both values.
func (s *AuthService) Login(email, password string) error {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !emailOK || !passOK || s.email == "" {
		return ErrInvalidCredentials
	}
	return nil
}
