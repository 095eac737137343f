// Package auth verifies credentials and issues the signed bearer tokens the
// rest of the API trusts. Expiry is the only invalidation mechanism; there
// are no refresh tokens and no revocation list.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/unnamedbank/banking/pkg/config"
	"github.com/unnamedbank/banking/pkg/domain/client"
	"github.com/unnamedbank/banking/pkg/dto"
	"github.com/unnamedbank/banking/pkg/repository"
	"github.com/unnamedbank/banking/pkg/utils"
)

// Issuer is the iss claim of every token this service signs.
const Issuer = "Unnamed Banking Service"

var (
	// ErrTokenMalformed is returned for input that is not a compact JWS.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenExpired is returned when the exp claim is in the past.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenSignature is returned when the HMAC does not verify.
	ErrTokenSignature = errors.New("token signature is invalid")
)

// Service authenticates clients against the identity store and manages
// bearer tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth service.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies the credentials and returns the stored client. A lookup
// miss still burns one bcrypt comparison so response timing does not reveal
// which usernames exist.
func (s *Service) Login(
	ctx context.Context,
	username, password string,
) (c *dto.ClientRead, err error) {
	log := s.logger.With("context", "Login", "username", username)
	log.Debug("Login called")

	const dummyHash = "$2a$14$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err = uow.Clients().GetByUsername(ctx, username)
		return err
	})
	if err != nil {
		log.Error("Login failed", "error", err)
		return nil, err
	}
	if c == nil {
		_ = utils.CheckPasswordHash(password, dummyHash)
		log.Warn("Login failed", "error", client.ErrUnauthorized)
		return nil, client.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, c.Password) {
		log.Warn("Login failed", "error", client.ErrUnauthorized)
		return nil, client.ErrUnauthorized
	}
	log.Info("Login successful", "clientID", c.ID)
	return c, nil
}

// IssueToken signs an HS512 token with sub = username, the fixed issuer and
// the configured TTL.
func (s *Service) IssueToken(username string) (string, error) {
	log := s.logger.With("context", "IssueToken", "username", username)
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiry)),
	})
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		log.Error("IssueToken failed", "error", err)
		return "", err
	}
	log.Info("IssueToken successful")
	return signed, nil
}

// VerifyToken validates the compact serialization, the HS512 signature and
// the expiry, and returns the subject claim.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		default:
			return "", ErrTokenSignature
		}
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrTokenMalformed
	}
	return subject, nil
}
