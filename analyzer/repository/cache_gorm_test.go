package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/flowgrade/flowgrade/pkg/cachekey"
)

func newTestRepo(t *testing.T, ttl time.Duration) *CacheGormRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.TempDir()+"/cache.db?_journal_mode=WAL"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo := NewCacheGormRepository(db, ttl)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestCacheGormRepository_SetThenGet(t *testing.T) {
	repo := newTestRepo(t, time.Hour)
	ctx := context.Background()
	hash := cachekey.Key("pseudocode_to_cfg", "return x")
	payload := json.RawMessage(`{"nodes": [], "edges": []}`)

	repo.Set(ctx, "pseudocode_to_cfg", hash, payload)

	got, ok := repo.Get(ctx, "pseudocode_to_cfg", hash)
	require.True(t, ok)
	assert.JSONEq(t, string(payload), string(got))
}

func TestCacheGormRepository_MissOnUnknownKey(t *testing.T) {
	repo := newTestRepo(t, time.Hour)

	_, ok := repo.Get(context.Background(), "pseudocode_to_cfg", cachekey.Key("pseudocode_to_cfg", "never stored"))
	assert.False(t, ok)
}

func TestCacheGormRepository_KeysAreCallTypeScoped(t *testing.T) {
	repo := newTestRepo(t, time.Hour)
	ctx := context.Background()
	hash := cachekey.Key("pseudocode_to_cfg", "return x")

	repo.Set(ctx, "pseudocode_to_cfg", hash, json.RawMessage(`{"a": 1}`))

	_, ok := repo.Get(ctx, "analyze_problem", hash)
	assert.False(t, ok)
}

func TestCacheGormRepository_GetIncrementsHitCount(t *testing.T) {
	repo := newTestRepo(t, time.Hour)
	ctx := context.Background()
	hash := cachekey.Key("pseudocode_to_cfg", "return x")
	repo.Set(ctx, "pseudocode_to_cfg", hash, json.RawMessage(`{}`))

	for i := 0; i < 3; i++ {
		_, ok := repo.Get(ctx, "pseudocode_to_cfg", hash)
		require.True(t, ok)
	}

	var entry cacheModel
	require.NoError(t, repo.db.Where("content_hash = ?", hash).First(&entry).Error)
	assert.Equal(t, int64(3), entry.HitCount)
}

func TestCacheGormRepository_ReplaceResetsHitCountAndTTL(t *testing.T) {
	repo := newTestRepo(t, time.Hour)
	ctx := context.Background()
	hash := cachekey.Key("pseudocode_to_cfg", "return x")

	repo.Set(ctx, "pseudocode_to_cfg", hash, json.RawMessage(`{"v": 1}`))
	_, ok := repo.Get(ctx, "pseudocode_to_cfg", hash)
	require.True(t, ok)

	repo.Set(ctx, "pseudocode_to_cfg", hash, json.RawMessage(`{"v": 2}`))

	got, ok := repo.Get(ctx, "pseudocode_to_cfg", hash)
	require.True(t, ok)
	assert.JSONEq(t, `{"v": 2}`, string(got))

	var entry cacheModel
	require.NoError(t, repo.db.Where("content_hash = ?", hash).First(&entry).Error)
	// One hit after the replace; the pre-replace hit does not carry over.
	assert.Equal(t, int64(1), entry.HitCount)
	assert.WithinDuration(t, time.Now().Add(time.Hour), entry.ExpiresAt, time.Minute)

	var count int64
	require.NoError(t, repo.db.Model(&cacheModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "replace must not create a second row")
}

func TestCacheGormRepository_ExpiredEntryIsAbsent(t *testing.T) {
	repo := newTestRepo(t, -time.Minute)
	ctx := context.Background()
	hash := cachekey.Key("pseudocode_to_cfg", "return x")

	repo.Set(ctx, "pseudocode_to_cfg", hash, json.RawMessage(`{}`))

	_, ok := repo.Get(ctx, "pseudocode_to_cfg", hash)
	assert.False(t, ok, "expired entry must behave like a miss")

	// The row is still on disk until a sweep runs.
	var count int64
	require.NoError(t, repo.db.Model(&cacheModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCacheGormRepository_SweepRemovesOnlyExpired(t *testing.T) {
	repo := newTestRepo(t, time.Hour)
	ctx := context.Background()

	repo.Set(ctx, "pseudocode_to_cfg", cachekey.Key("pseudocode_to_cfg", "live one"), json.RawMessage(`{}`))
	repo.Set(ctx, "pseudocode_to_cfg", cachekey.Key("pseudocode_to_cfg", "live two"), json.RawMessage(`{}`))

	expired := NewCacheGormRepository(repo.db, -time.Minute)
	expired.Set(ctx, "analyze_problem", cachekey.Key("analyze_problem", "stale"), json.RawMessage(`{}`))

	removed, err := repo.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = repo.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed, "second sweep finds nothing")

	var count int64
	require.NoError(t, repo.db.Model(&cacheModel{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestCacheGormRepository_Stats(t *testing.T) {
	repo := newTestRepo(t, 24*time.Hour)
	ctx := context.Background()

	hashA := cachekey.Key("pseudocode_to_cfg", "a")
	repo.Set(ctx, "pseudocode_to_cfg", hashA, json.RawMessage(`{"nodes": []}`))
	repo.Set(ctx, "pseudocode_to_cfg", cachekey.Key("pseudocode_to_cfg", "b"), json.RawMessage(`{"nodes": []}`))
	repo.Set(ctx, "analyze_problem", cachekey.Key("analyze_problem", "c"), json.RawMessage(`{"difficulty": "easy"}`))

	expired := NewCacheGormRepository(repo.db, -time.Minute)
	expired.Set(ctx, "compare_cfgs", cachekey.Key("compare_cfgs", "d"), json.RawMessage(`{}`))

	for i := 0; i < 2; i++ {
		_, ok := repo.Get(ctx, "pseudocode_to_cfg", hashA)
		require.True(t, ok)
	}

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalEntries)
	assert.Equal(t, int64(3), stats.LiveEntries)
	assert.Equal(t, int64(1), stats.ExpiredEntries)
	assert.Equal(t, int64(2), stats.TotalHits)
	assert.Equal(t, 24, stats.TTLHours)
	assert.Positive(t, stats.ResponseBytes)
	assert.NotEmpty(t, stats.HumanSize)

	require.Len(t, stats.ByCallType, 2)
	// Ordered by hits, most used call type first.
	assert.Equal(t, "pseudocode_to_cfg", stats.ByCallType[0].CallType)
	assert.Equal(t, int64(2), stats.ByCallType[0].Entries)
	assert.Equal(t, int64(2), stats.ByCallType[0].Hits)
	assert.Equal(t, "analyze_problem", stats.ByCallType[1].CallType)
	assert.Equal(t, int64(0), stats.ByCallType[1].Hits)
}

func TestCacheGormRepository_StatsEmptyDatabase(t *testing.T) {
	repo := newTestRepo(t, time.Hour)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalEntries)
	assert.Equal(t, int64(0), stats.TotalHits)
	assert.Empty(t, stats.ByCallType)
}
