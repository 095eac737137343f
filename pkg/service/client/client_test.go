package client_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unnamedbank/banking/internal/fixtures"
	"github.com/unnamedbank/banking/pkg/domain/client"
	"github.com/unnamedbank/banking/pkg/dto"
	clientsvc "github.com/unnamedbank/banking/pkg/service/client"
)

func strPtr(s string) *string { return &s }

func newRegistration(username, phone, email string) clientsvc.Registration {
	return clientsvc.Registration{
		Username:       username,
		Password:       "password",
		InitialBalance: decimal.RequireFromString("100.00"),
		PhoneNumber:    phone,
		Email:          email,
		BirthDate:      time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		FullName:       "Ivan Ivanov",
	}
}

func TestRegister_CreatesClientAndAccount(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	svc := clientsvc.New(fixtures.NewUoW(store), slog.Default())

	created, err := svc.Register(context.Background(),
		newRegistration("ivanov", "79001234567", "ivan@example.com"))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, "password", created.Password)

	require.Len(t, store.Accounts, 1)
	for _, a := range store.Accounts {
		assert.Equal(t, created.ID, a.ClientID)
		assert.Equal(t, "100.00", a.Balance.StringFixed(2))
		assert.Equal(t, "100.00", a.InitialBalance.StringFixed(2))
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	svc := clientsvc.New(fixtures.NewUoW(store), slog.Default())

	_, err := svc.Register(context.Background(),
		newRegistration("ivanov", "79001234567", "not-an-email"))
	require.Error(t, err)
	assert.Empty(t, store.Clients)
	assert.Empty(t, store.Accounts)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	svc := clientsvc.New(fixtures.NewUoW(store), slog.Default())

	_, err := svc.Register(context.Background(),
		newRegistration("ivanov", "79001234567", "ivan@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(),
		newRegistration("ivanov", "79007654321", "other@example.com"))
	assert.ErrorIs(t, err, client.ErrUsernameTaken)

	// The failed registration must not leave partial rows behind.
	assert.Len(t, store.Clients, 1)
	assert.Len(t, store.Accounts, 1)
}

func TestRegister_DuplicateContacts(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	svc := clientsvc.New(fixtures.NewUoW(store), slog.Default())

	_, err := svc.Register(context.Background(),
		newRegistration("ivanov", "79001234567", "ivan@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(),
		newRegistration("petrov", "79001234567", "petr@example.com"))
	assert.ErrorIs(t, err, client.ErrPhoneTaken)

	_, err = svc.Register(context.Background(),
		newRegistration("petrov", "79007654321", "ivan@example.com"))
	assert.ErrorIs(t, err, client.ErrEmailTaken)
}

func TestUpdateContact_PartialUpdate(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	svc := clientsvc.New(fixtures.NewUoW(store), slog.Default())

	created, err := svc.Register(context.Background(),
		newRegistration("ivanov", "79001234567", "ivan@example.com"))
	require.NoError(t, err)

	updated, err := svc.UpdateContact(
		context.Background(), created.ID, strPtr("79009999999"), nil)
	require.NoError(t, err)
	require.NotNil(t, updated.PhoneNumber)
	assert.Equal(t, "79009999999", *updated.PhoneNumber)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "ivan@example.com", *updated.Email)
}

func TestUpdateContact_ConflictWithOtherClient(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	svc := clientsvc.New(fixtures.NewUoW(store), slog.Default())

	_, err := svc.Register(context.Background(),
		newRegistration("ivanov", "79001234567", "ivan@example.com"))
	require.NoError(t, err)
	petrov, err := svc.Register(context.Background(),
		newRegistration("petrov", "79007654321", "petr@example.com"))
	require.NoError(t, err)

	_, err = svc.UpdateContact(
		context.Background(), petrov.ID, strPtr("79001234567"), nil)
	assert.ErrorIs(t, err, client.ErrPhoneTaken)

	_, err = svc.UpdateContact(
		context.Background(), petrov.ID, nil, strPtr("ivan@example.com"))
	assert.ErrorIs(t, err, client.ErrEmailTaken)

	// Re-submitting an own value is not a conflict.
	_, err = svc.UpdateContact(
		context.Background(), petrov.ID, strPtr("79007654321"), nil)
	assert.NoError(t, err)
}

func TestUpdateContact_UnknownClient(t *testing.T) {
	t.Parallel()
	svc := clientsvc.New(fixtures.NewUoW(fixtures.NewMemoryStore()), slog.Default())

	_, err := svc.UpdateContact(context.Background(), 42, strPtr("79001234567"), nil)
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestDeleteContact_KeepsLastChannel(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	svc := clientsvc.New(fixtures.NewUoW(store), slog.Default())

	created, err := svc.Register(context.Background(),
		newRegistration("ivanov", "79001234567", "ivan@example.com"))
	require.NoError(t, err)

	updated, err := svc.DeleteContact(context.Background(), created.ID, true, false)
	require.NoError(t, err)
	assert.Nil(t, updated.PhoneNumber)
	require.NotNil(t, updated.Email)

	// The email is now the only channel left and may not be removed.
	_, err = svc.DeleteContact(context.Background(), created.ID, false, true)
	assert.ErrorIs(t, err, client.ErrContactRequired)
}

func TestDeleteContact_BothAtOnce(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	svc := clientsvc.New(fixtures.NewUoW(store), slog.Default())

	created, err := svc.Register(context.Background(),
		newRegistration("ivanov", "79001234567", "ivan@example.com"))
	require.NoError(t, err)

	_, err = svc.DeleteContact(context.Background(), created.ID, true, true)
	assert.ErrorIs(t, err, client.ErrBothContactsDelete)
}

func TestDeleteContact_UnknownClient(t *testing.T) {
	t.Parallel()
	svc := clientsvc.New(fixtures.NewUoW(fixtures.NewMemoryStore()), slog.Default())

	// Existence wins over the both-flags policy check.
	_, err := svc.DeleteContact(context.Background(), 42, true, true)
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestSearch_ByBirthDate(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	svc := clientsvc.New(fixtures.NewUoW(store), slog.Default())

	reg := newRegistration("ivanov", "79001234567", "ivan@example.com")
	reg.BirthDate = time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Register(context.Background(), reg)
	require.NoError(t, err)

	reg = newRegistration("petrov", "79007654321", "petr@example.com")
	reg.BirthDate = time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Register(context.Background(), reg)
	require.NoError(t, err)

	after := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	page, err := svc.Search(context.Background(), dto.ClientFilter{
		BirthDate: &after,
		Page:      0,
		Size:      10,
		SortBy:    "id",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "petrov", page.Items[0].Username)
	assert.EqualValues(t, 1, page.TotalElements)
}

func TestGetByUsername(t *testing.T) {
	t.Parallel()
	store := fixtures.NewMemoryStore()
	svc := clientsvc.New(fixtures.NewUoW(store), slog.Default())

	created, err := svc.Register(context.Background(),
		newRegistration("ivanov", "79001234567", "ivan@example.com"))
	require.NoError(t, err)

	found, err := svc.GetByUsername(context.Background(), "ivanov")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}
