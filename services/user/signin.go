package user

import (
	"strings"

	"karigar/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Signin verifies credentials and issues a fresh token. Wrong email and wrong
// password produce the same error so the endpoint cannot be used to probe for
// accounts.
func (s *DefaultUserService) Signin(in SigninInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	u, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Signin: failed to fetch user", zap.Error(err))
		return nil, utils.NewAppError(utils.CodeInternal, "could not sign in")
	}
	if u == nil {
		return nil, utils.NewAppError(utils.CodeUnauthorized, "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, utils.NewAppError(utils.CodeUnauthorized, "invalid email or password")
	}

	return s.issueToken(u)
}
