package auth_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unnamedbank/banking/internal/fixtures"
	"github.com/unnamedbank/banking/pkg/config"
	"github.com/unnamedbank/banking/pkg/domain/client"
	"github.com/unnamedbank/banking/pkg/dto"
	authsvc "github.com/unnamedbank/banking/pkg/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func newService(store *fixtures.MemoryStore, cfg *config.Jwt) *authsvc.Service {
	if cfg == nil {
		cfg = &config.Jwt{Secret: "test-secret", Expiry: 20 * time.Minute}
	}
	return authsvc.New(fixtures.NewUoW(store), cfg, slog.Default())
}

func seedClient(store *fixtures.MemoryStore, username, password string) dto.ClientRead {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	email := username + "@example.com"
	return store.SeedClient(dto.ClientRead{
		Username: username,
		Password: string(hash),
		FullName: "Ivan Ivanov",
		Email:    &email,
	})
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	seeded := seedClient(store, "ivanov", "password")
	svc := newService(store, nil)

	c, err := svc.Login(context.Background(), "ivanov", "password")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, seeded.ID, c.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	seedClient(store, "ivanov", "password")
	svc := newService(store, nil)

	c, err := svc.Login(context.Background(), "ivanov", "wrong")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Nil(t, c)
}

func TestLogin_UnknownUsername(t *testing.T) {
	t.Parallel()
	svc := newService(fixtures.NewMemoryStore(), nil)

	c, err := svc.Login(context.Background(), "nobody", "password")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Nil(t, c)
}

func TestToken_RoundTrip(t *testing.T) {
	t.Parallel()
	svc := newService(fixtures.NewMemoryStore(), nil)

	token, err := svc.IssueToken("ivanov")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ivanov", subject)
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()
	cfg := &config.Jwt{Secret: "test-secret", Expiry: -time.Minute}
	svc := newService(fixtures.NewMemoryStore(), cfg)

	token, err := svc.IssueToken("ivanov")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, authsvc.ErrTokenExpired)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	t.Parallel()
	signer := newService(fixtures.NewMemoryStore(),
		&config.Jwt{Secret: "other-secret", Expiry: 20 * time.Minute})
	verifier := newService(fixtures.NewMemoryStore(), nil)

	token, err := signer.IssueToken("ivanov")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, authsvc.ErrTokenSignature)
}

func TestVerifyToken_Malformed(t *testing.T) {
	t.Parallel()
	svc := newService(fixtures.NewMemoryStore(), nil)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, authsvc.ErrTokenMalformed)
}
