package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("s3cret"))

	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestHashURL(t *testing.T) {
	assert.Equal(t, HashURL("example.com"), HashURL("example.com"))
	assert.NotEqual(t, HashURL("example.com"), HashURL("example.org"))
	assert.Len(t, HashURL("example.com"), 64)
}
