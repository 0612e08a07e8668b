// Package repository implements the durable response cache on GORM.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/flowgrade/flowgrade/analyzer/domain"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cacheModel is the persistence model for cached model responses. The domain
// stays free of GORM tags.
type cacheModel struct {
	ID          string    `gorm:"primaryKey"`
	CallType    string    `gorm:"column:call_type;not null;uniqueIndex:idx_ai_cache_key"`
	ContentHash string    `gorm:"column:content_hash;not null;uniqueIndex:idx_ai_cache_key"`
	Response    string    `gorm:"column:response"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at;index"`
	HitCount    int64     `gorm:"column:hit_count;not null;default:0"`
}

func (cacheModel) TableName() string {
	return "ai_cache"
}

// CacheGormRepository implements domain.ResponseCacheStore on a GORM
// database. Conflicting writes to the same key are serialized by the
// database's own locking, so entries may also be written by a separate
// process.
type CacheGormRepository struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewCacheGormRepository(db *gorm.DB, ttl time.Duration) *CacheGormRepository {
	return &CacheGormRepository{db: db, ttl: ttl}
}

// Init initializes the schema using AutoMigrate.
func (r *CacheGormRepository) Init(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&cacheModel{})
}

// TTL returns the configured entry lifetime.
func (r *CacheGormRepository) TTL() time.Duration {
	return r.ttl
}

// Get looks up a live entry and increments its hit counter. Expired rows are
// treated as absent but left in place for the sweep. Storage faults degrade
// to a miss.
func (r *CacheGormRepository) Get(ctx context.Context, callType, contentHash string) (json.RawMessage, bool) {
	var entry cacheModel
	err := r.db.WithContext(ctx).
		Where("call_type = ? AND content_hash = ? AND expires_at > ?", callType, contentHash, time.Now()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).Warn("[CACHE] Lookup failed, treating as miss")
		return nil, false
	}

	if err := r.db.WithContext(ctx).Model(&cacheModel{}).
		Where("id = ?", entry.ID).
		UpdateColumn("hit_count", gorm.Expr("hit_count + 1")).Error; err != nil {
		logrus.WithError(err).Warn("[CACHE] Failed to increment hit count")
	}

	logrus.WithFields(logrus.Fields{
		"call_type": callType,
		"hash":      contentHash[:12] + "...",
	}).Info("[CACHE HIT]")
	return json.RawMessage(entry.Response), true
}

// Set stores or replaces the entry with a fresh TTL window and a zeroed hit
// counter. Storage faults are logged and dropped; a failed cache write never
// aborts the computation that produced the record.
func (r *CacheGormRepository) Set(ctx context.Context, callType, contentHash string, response json.RawMessage) {
	now := time.Now()
	entry := cacheModel{
		ID:          uuid.NewString(),
		CallType:    callType,
		ContentHash: contentHash,
		Response:    string(response),
		CreatedAt:   now,
		ExpiresAt:   now.Add(r.ttl),
		HitCount:    0,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "call_type"}, {Name: "content_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"response", "created_at", "expires_at", "hit_count"}),
	}).Create(&entry).Error
	if err != nil {
		logrus.WithError(err).Error("[CACHE] Failed to store response")
		return
	}

	logrus.WithFields(logrus.Fields{
		"call_type": callType,
		"hash":      contentHash[:12] + "...",
		"ttl":       r.ttl.String(),
	}).Info("[CACHE STORE]")
}

type callTypeRow struct {
	CallType string
	Entries  int64
	Hits     int64
}

// Stats aggregates entry and hit counts. Live restricts to rows whose
// expires_at is still in the future.
func (r *CacheGormRepository) Stats(ctx context.Context) (domain.CacheStats, error) {
	db := r.db.WithContext(ctx)
	now := time.Now()
	stats := domain.CacheStats{TTLHours: int(r.ttl / time.Hour)}

	if err := db.Model(&cacheModel{}).Count(&stats.TotalEntries).Error; err != nil {
		return domain.CacheStats{}, err
	}
	if err := db.Model(&cacheModel{}).Where("expires_at > ?", now).Count(&stats.LiveEntries).Error; err != nil {
		return domain.CacheStats{}, err
	}
	stats.ExpiredEntries = stats.TotalEntries - stats.LiveEntries

	if err := db.Model(&cacheModel{}).
		Where("expires_at > ?", now).
		Select("COALESCE(SUM(hit_count), 0)").
		Scan(&stats.TotalHits).Error; err != nil {
		return domain.CacheStats{}, err
	}
	if err := db.Model(&cacheModel{}).
		Where("expires_at > ?", now).
		Select("COALESCE(SUM(LENGTH(response)), 0)").
		Scan(&stats.ResponseBytes).Error; err != nil {
		return domain.CacheStats{}, err
	}
	stats.HumanSize = humanize.Bytes(uint64(stats.ResponseBytes))

	var rows []callTypeRow
	if err := db.Model(&cacheModel{}).
		Where("expires_at > ?", now).
		Select("call_type, COUNT(*) AS entries, COALESCE(SUM(hit_count), 0) AS hits").
		Group("call_type").
		Order("hits DESC").
		Scan(&rows).Error; err != nil {
		return domain.CacheStats{}, err
	}
	stats.ByCallType = make([]domain.CallTypeStats, 0, len(rows))
	for _, row := range rows {
		stats.ByCallType = append(stats.ByCallType, domain.CallTypeStats{
			CallType: row.CallType,
			Entries:  row.Entries,
			Hits:     row.Hits,
		})
	}

	return stats, nil
}

// Sweep deletes every expired entry and returns the number removed.
func (r *CacheGormRepository) Sweep(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&cacheModel{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		logrus.WithField("removed", res.RowsAffected).Info("[CACHE] Swept expired entries")
	}
	return res.RowsAffected, nil
}
