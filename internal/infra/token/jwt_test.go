package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTIssuer_IssueAndParse(t *testing.T) {
	iss := NewJWTIssuer("secret", time.Hour)
	now := time.Now()

	tok, exp, err := iss.Issue("user-1", now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), exp, time.Second)

	sub, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestJWTIssuer_Rejects(t *testing.T) {
	iss := NewJWTIssuer("secret", time.Hour)
	tok, _, err := iss.Issue("user-1", time.Now())
	require.NoError(t, err)

	// 別シークレット
	_, err = NewJWTIssuer("other", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 期限切れ
	expired, _, err := iss.Issue("user-1", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = iss.Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
