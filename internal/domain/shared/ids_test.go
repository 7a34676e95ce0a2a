package shared

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountID_RoundTrip(t *testing.T) {
	id := NewAccountID()

	parsed, err := ParseAccountID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.False(t, parsed.IsZero())
}

func TestParseAccountID_Malformed(t *testing.T) {
	for _, input := range []string{"", "not-a-uuid", "1234"} {
		_, err := ParseAccountID(input)
		assert.Error(t, err, "input %q should not parse", input)
	}
}

func TestTransactionID_RoundTrip(t *testing.T) {
	id := NewTransactionID()

	parsed, err := ParseTransactionID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestUserID_RoundTrip(t *testing.T) {
	id := NewUserID()

	parsed, err := ParseUserID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestIDs_ZeroValueDetection(t *testing.T) {
	assert.True(t, AccountID{}.IsZero())
	assert.True(t, TransactionID{}.IsZero())
	assert.True(t, UserID{}.IsZero())
	assert.True(t, RoleID{}.IsZero())
	assert.True(t, PermissionID{}.IsZero())

	assert.False(t, NewRoleID().IsZero())
	assert.False(t, NewPermissionID().IsZero())
}

func TestIDs_EqualityByValue(t *testing.T) {
	raw := uuid.New()

	assert.Equal(t, UserIDFrom(raw), UserIDFrom(raw))
	assert.NotEqual(t, NewUserID(), NewUserID())
}

func TestCheckExists(t *testing.T) {
	ctx := context.Background()
	missing := errors.New("not found")

	t.Run("Found", func(t *testing.T) {
		err := CheckExists(ctx, func(context.Context) (bool, error) { return true, nil }, missing)
		assert.NoError(t, err)
	})

	t.Run("Missing", func(t *testing.T) {
		err := CheckExists(ctx, func(context.Context) (bool, error) { return false, nil }, missing)
		assert.ErrorIs(t, err, missing)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		repoErr := errors.New("db down")
		err := CheckExists(ctx, func(context.Context) (bool, error) { return false, repoErr }, missing)
		assert.ErrorIs(t, err, repoErr)
		assert.NotErrorIs(t, err, missing)
	})
}
