package store

import (
	"context"
	"testing"
	"time"

	"shorturl-analytics/internal/cache"
	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLinkStore(t *testing.T) *LinkStore {
	return NewLinkStore(testutil.NewDB(t), cache.NewMemoryCache(time.Minute), zap.NewNop().Sugar())
}

func TestLinkStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	s := newLinkStore(t)

	_, ok, err := s.FindAlias(ctx, "alice", "example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	created, err := s.Create(ctx, "alice", "example.com", "aB3x9")
	require.NoError(t, err)
	assert.True(t, created)

	alias, ok, err := s.FindAlias(ctx, "alice", "example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "aB3x9", alias)

	target, ok, err := s.FindTarget(ctx, "aB3x9")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "example.com", target.URL)
	assert.Equal(t, "alice", target.Owner)

	count, ok, err := s.ClickCount(ctx, "aB3x9")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, count)
}

func TestLinkStore_CreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newLinkStore(t)

	created, err := s.Create(ctx, "alice", "example.com", "aaaaa")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Create(ctx, "alice", "example.com", "bbbbb")
	require.NoError(t, err)
	assert.False(t, created)

	alias, _, err := s.FindAlias(ctx, "alice", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "aaaaa", alias)

	links, err := s.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, links, 1)
}

func TestLinkStore_AliasIsGloballyUnique(t *testing.T) {
	ctx := context.Background()
	s := newLinkStore(t)

	_, err := s.Create(ctx, "alice", "example.com", "aaaaa")
	require.NoError(t, err)

	created, err := s.Create(ctx, "bob", "example.org", "aaaaa")
	require.NoError(t, err)
	assert.False(t, created)

	exists, err := s.AliasExists(ctx, "bob", "aaaaa")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.AliasExists(ctx, "bob", "zzzzz")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLinkStore_SameURLDifferentOwners(t *testing.T) {
	ctx := context.Background()
	s := newLinkStore(t)

	_, err := s.Create(ctx, model.PublicOwner, "example.com", "aaaaa")
	require.NoError(t, err)
	created, err := s.Create(ctx, "alice", "example.com", "bbbbb")
	require.NoError(t, err)
	assert.True(t, created)

	pub, _, _ := s.FindAlias(ctx, model.PublicOwner, "example.com")
	alice, _, _ := s.FindAlias(ctx, "alice", "example.com")
	assert.Equal(t, "aaaaa", pub)
	assert.Equal(t, "bbbbb", alice)
}

func TestLinkStore_FindTargetMissing(t *testing.T) {
	s := newLinkStore(t)

	target, ok, err := s.FindTarget(context.Background(), "nope0")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, target)

	_, ok, err = s.IDFor(context.Background(), "nope0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.ClickCount(context.Background(), "nope0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLinkStore_IncrementClicks(t *testing.T) {
	ctx := context.Background()
	s := newLinkStore(t)
	_, err := s.Create(ctx, "alice", "example.com", "aaaaa")
	require.NoError(t, err)

	require.NoError(t, s.IncrementClicks(ctx, "aaaaa"))
	require.NoError(t, s.IncrementClicks(ctx, "aaaaa"))
	// 不存在的短码静默忽略
	require.NoError(t, s.IncrementClicks(ctx, "zzzzz"))

	count, _, err := s.ClickCount(ctx, "aaaaa")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestLinkStore_AppendClick(t *testing.T) {
	ctx := context.Background()
	s := newLinkStore(t)
	_, err := s.Create(ctx, "alice", "example.com", "aaaaa")
	require.NoError(t, err)
	id, ok, err := s.IDFor(ctx, "aaaaa")
	require.NoError(t, err)
	require.True(t, ok)

	ref := "https://news.example/"
	now := time.Now()
	require.NoError(t, s.AppendClick(ctx, &model.ClickRecord{ShortLinkID: id, Referer: &ref, Browser: "Firefox 120.0", ClickedAt: now}))
	require.NoError(t, s.AppendClick(ctx, &model.ClickRecord{ShortLinkID: id, Browser: "Chrome 119.0", ClickedAt: now.Add(time.Second)}))

	records, err := s.ListClicks(ctx, id)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NotNil(t, records[0].Referer)
	assert.Equal(t, ref, *records[0].Referer)
	assert.Nil(t, records[1].Referer)
	assert.Equal(t, "Chrome 119.0", records[1].Browser)

	count, _, err := s.ClickCount(ctx, "aaaaa")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestLinkStore_AppendClickUnknownLinkRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newLinkStore(t)

	err := s.AppendClick(ctx, &model.ClickRecord{ShortLinkID: 999, ClickedAt: time.Now()})
	assert.ErrorIs(t, err, ErrStorage)

	records, err := s.ListClicks(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLinkStore_FindTargetUsesCache(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	c := cache.NewMemoryCache(time.Minute)
	s := NewLinkStore(db, c, zap.NewNop().Sugar())

	_, err := s.Create(ctx, "alice", "example.com", "aaaaa")
	require.NoError(t, err)
	_, ok, err := s.FindTarget(ctx, "aaaaa")
	require.NoError(t, err)
	require.True(t, ok)

	raw, ok, err := c.Get(ctx, "aaaaa")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, "example.com")

	// 直接改库后仍命中缓存
	require.NoError(t, db.Model(&model.ShortLink{}).Where("short_code = ?", "aaaaa").Update("original_url", "changed.com").Error)
	target, ok, err := s.FindTarget(ctx, "aaaaa")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "example.com", target.URL)
}

func TestLinkStore_StorageError(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewLinkStore(db, nil, zap.NewNop().Sugar())
	sqlDB, _ := db.DB()
	require.NoError(t, sqlDB.Close())

	_, _, err := s.FindAlias(context.Background(), "alice", "example.com")
	assert.ErrorIs(t, err, ErrStorage)
	_, _, err = s.FindTarget(context.Background(), "aaaaa")
	assert.ErrorIs(t, err, ErrStorage)
}
