package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-events-hub/internal/domain/user"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	u := user.New("Mia", "Member", "mia@hub.test", "hash", time.Now())

	token, err := svc.Issue(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestParse_WrongSecret(t *testing.T) {
	u := user.New("Mia", "Member", "mia@hub.test", "hash", time.Now())
	token, err := NewTokenService("secret-a", time.Hour).Issue(u)
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)
	u := user.New("Mia", "Member", "mia@hub.test", "hash", time.Now())

	token, err := svc.Issue(u)
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	_, err := svc.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Parse("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
