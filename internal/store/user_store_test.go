package store

import (
	"context"
	"testing"

	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(testutil.NewDB(t))

	_, ok, err := s.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, ok)

	u := &model.User{Username: "bob"}
	require.NoError(t, u.SetPassword("hunter22"))
	created, err := s.Create(ctx, u)
	require.NoError(t, err)
	assert.True(t, created)

	dup := &model.User{Username: "bob", PasswordHash: "x"}
	created, err = s.Create(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)

	found, ok, err := s.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, found.CheckPassword("hunter22"))
}
