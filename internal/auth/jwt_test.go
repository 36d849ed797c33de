package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	i := NewIssuer("secret", time.Hour)

	profileID, token, err := i.NewProfile()
	require.NoError(t, err)
	require.NotEmpty(t, profileID)

	got, err := i.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, profileID, got)
}

func TestParse_Rejects(t *testing.T) {
	i := NewIssuer("secret", time.Hour)
	token, err := i.Issue("p1")
	require.NoError(t, err)

	t.Run("WrongSecret", func(t *testing.T) {
		_, err := NewIssuer("other", time.Hour).Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		late := NewIssuer("secret", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := i.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestFromHeader(t *testing.T) {
	token, ok := FromHeader("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	_, ok = FromHeader("Basic abc")
	assert.False(t, ok)

	_, ok = FromHeader("Bearer ")
	assert.False(t, ok)
}
