package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/frahmantamala/cost-manager/internal/report"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheEntry is the persisted form of one closed-month report.
type CacheEntry struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_report_cache_key"`
	Year      int       `gorm:"column:year;not null;uniqueIndex:idx_report_cache_key"`
	Month     int       `gorm:"column:month;not null;uniqueIndex:idx_report_cache_key"`
	Costs     []byte    `gorm:"column:costs;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (CacheEntry) TableName() string {
	return "report_cache"
}

// ReportCache implements report.Cache using GORM.
type ReportCache struct {
	db *gorm.DB
}

func NewReportCache(db *gorm.DB) *ReportCache {
	return &ReportCache{db: db}
}

// Lookup returns the stored report for the exact key, or absent. It never
// triggers computation.
func (r *ReportCache) Lookup(ctx context.Context, userID int64, year, month int) (report.CategorizedReport, bool, error) {
	var entry CacheEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND year = ? AND month = ?", userID, year, month).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var costs report.CategorizedReport
	if err := json.Unmarshal(entry.Costs, &costs); err != nil {
		return nil, false, err
	}
	return costs, true, nil
}

// Store upserts the report for (user, year, month); last write wins.
func (r *ReportCache) Store(ctx context.Context, userID int64, year, month int, rep report.CategorizedReport) error {
	costs, err := json.Marshal(rep)
	if err != nil {
		return err
	}

	entry := CacheEntry{
		UserID: userID,
		Year:   year,
		Month:  month,
		Costs:  costs,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"costs", "updated_at"}),
		}).
		Create(&entry).Error
}
