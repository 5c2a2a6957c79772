package repository

import (
	"context"
	"fmt"

	"backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevenueSummaryRow is one bucket of the grouped revenue aggregate.
type RevenueSummaryRow struct {
	Period      string  `gorm:"column:period" json:"period"`
	TotalAmount float64 `gorm:"column:total_amount" json:"total_amount"`
	EntryCount  int64   `gorm:"column:entry_count" json:"entry_count"`
}

// RevenueRepository owns derived revenue entries.
type RevenueRepository interface {
	// CreateIfAbsent inserts the entry unless one already exists for the same
	// (related_id, source) pair. The unique index makes this a single atomic
	// insert-or-ignore; the returned bool reports whether a row was created.
	CreateIfAbsent(ctx context.Context, entry *model.RevenueEntry) (bool, error)
	List(ctx context.Context, page, limit int) ([]model.RevenueEntry, int64, error)
	Summary(ctx context.Context, groupBy, startDate, endDate string) ([]RevenueSummaryRow, error)
}

type revenueRepository struct {
	db *gorm.DB
}

func NewRevenueRepository(db *gorm.DB) RevenueRepository {
	return &revenueRepository{db: db}
}

func (r *revenueRepository) CreateIfAbsent(ctx context.Context, entry *model.RevenueEntry) (bool, error) {
	result := GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "related_id"}, {Name: "source"}},
		DoNothing: true,
	}).Create(entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *revenueRepository) List(ctx context.Context, page, limit int) ([]model.RevenueEntry, int64, error) {
	var entries []model.RevenueEntry
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.RevenueEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *revenueRepository) Summary(ctx context.Context, groupBy, startDate, endDate string) ([]RevenueSummaryRow, error) {
	query := `
		SELECT
			TO_CHAR(DATE_TRUNC($1, r.created_at), 'YYYY-MM-DD') AS period,
			COALESCE(SUM(r.amount), 0) AS total_amount,
			COUNT(*) AS entry_count
		FROM revenue_entries r
		WHERE r.deleted_at IS NULL
		  AND r.created_at >= $2::timestamptz
		  AND r.created_at <= $3::timestamptz
		GROUP BY DATE_TRUNC($1, r.created_at)
		ORDER BY period
	`

	var rows []RevenueSummaryRow
	if err := GetDB(ctx, r.db).Raw(query, groupBy, startDate, endDate).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query revenue summary: %w", err)
	}

	return rows, nil
}
