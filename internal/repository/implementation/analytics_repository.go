package implementation

import (
	"context"
	"time"

	"bookgpt-be/internal/entity"

	"gorm.io/gorm"
)

// AnalyticsRepository persists and aggregates chat analytics events.
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Migrate creates the analytics table if needed.
func (r *AnalyticsRepository) Migrate() error {
	return r.db.AutoMigrate(&entity.AnalyticsEvent{})
}

func (r *AnalyticsRepository) Create(ctx context.Context, event *entity.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *AnalyticsRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.AnalyticsEvent{}).Count(&count).Error
	return count, err
}

func (r *AnalyticsRepository) CountByType(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		EventType string
		Count     int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.AnalyticsEvent{}).
		Select("event_type, count(*) as count").
		Group("event_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EventType] = row.Count
	}
	return counts, nil
}

// CountByDay aggregates event counts for the last `days` days, oldest first.
func (r *AnalyticsRepository) CountByDay(ctx context.Context, days int) ([]DayCount, error) {
	since := time.Now().AddDate(0, 0, -days)

	var rows []struct {
		Day   time.Time
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.AnalyticsEvent{}).
		Select("date_trunc('day', created_at) as day, count(*) as count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]DayCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, DayCount{
			Day:   row.Day.Format("2006-01-02"),
			Count: row.Count,
		})
	}
	return counts, nil
}

type DayCount struct {
	Day   string
	Count int64
}
