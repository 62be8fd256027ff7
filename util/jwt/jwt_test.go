package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, exp, err := Issue("secret", "410544b2-4001-4271-9855-fec4b6a6442a", "user@nextmail.com", "User", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := Parse(tok, "secret")
	require.NoError(t, err)
	require.Equal(t, "410544b2-4001-4271-9855-fec4b6a6442a", c.Subject)
	require.Equal(t, "user@nextmail.com", c.Email)
	require.Equal(t, "User", c.Name)

	c, err = Parse("Bearer "+tok, "secret")
	require.NoError(t, err)
	require.Equal(t, "User", c.Name)
}

func TestParse_Rejects(t *testing.T) {
	tok, _, err := Issue("secret", "u1", "a@b.c", "A", time.Hour)
	require.NoError(t, err)

	_, err = Parse(tok, "other-secret")
	require.Error(t, err)

	_, err = Parse("", "secret")
	require.Error(t, err)

	expired, _, err := Issue("secret", "u1", "a@b.c", "A", -time.Minute)
	require.NoError(t, err)
	_, err = Parse(expired, "secret")
	require.Error(t, err)
}

func TestIssue_EmptySecret(t *testing.T) {
	_, _, err := Issue("", "u1", "a@b.c", "A", time.Hour)
	require.Error(t, err)
}
