package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	iss := NewIssuer("secret", 0)

	tok, err := iss.Issue(42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), tok.UserID)
	assert.Nil(t, tok.ExpiresAt)

	id, err := iss.Parse(tok.Key)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestIssuer_KeysAreUnique(t *testing.T) {
	iss := NewIssuer("secret", 0)

	a, err := iss.Issue(1)
	require.NoError(t, err)
	b, err := iss.Issue(1)
	require.NoError(t, err)

	assert.NotEqual(t, a.Key, b.Key)
}

func TestIssuer_RejectsForeignAndExpired(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	tok, err := iss.Issue(7)
	require.NoError(t, err)
	require.NotNil(t, tok.ExpiresAt)

	_, err = NewIssuer("other", time.Hour).Parse(tok.Key)
	assert.ErrorIs(t, err, ErrInvalidToken)

	iss.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = iss.Parse(tok.Key)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
