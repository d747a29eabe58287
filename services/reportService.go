package services

import (
	"context"
	"time"

	"github.com/Kariqs/chapaquente-api/models"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const financialStatsQuery = `
	SELECT
		COALESCE(SUM(CASE WHEN created_at >= ? THEN total ELSE 0 END), 0) AS daily,
		COALESCE(SUM(CASE WHEN created_at >= ? THEN total ELSE 0 END), 0) AS weekly,
		COALESCE(SUM(CASE WHEN created_at >= ? THEN total ELSE 0 END), 0) AS monthly,
		COUNT(*) AS total_orders
	FROM orders
	WHERE status <> ?`

type financialRow struct {
	Daily       decimal.Decimal `db:"daily"`
	Weekly      decimal.Decimal `db:"weekly"`
	Monthly     decimal.Decimal `db:"monthly"`
	TotalOrders int64           `db:"total_orders"`
}

// ReportService runs read-only aggregate queries.
type ReportService struct {
	db  *sqlx.DB
	loc *time.Location
	now func() time.Time
}

// NewReportService builds the report queries. Day boundaries are taken in loc.
func NewReportService(db *sqlx.DB, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{db: db, loc: loc, now: time.Now}
}

// FinancialStats sums non-cancelled revenue since the start of today, of the
// day seven days ago and of the day thirty days ago.
func (s *ReportService) FinancialStats(ctx context.Context) (*models.FinancialStats, error) {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	week := today.AddDate(0, 0, -7)
	month := today.AddDate(0, 0, -30)

	query := s.db.Rebind(financialStatsQuery)

	var row financialRow
	err := s.db.GetContext(ctx, &row, query,
		today.UTC(), week.UTC(), month.UTC(), string(models.StatusCancelled))
	if err != nil {
		return nil, err
	}

	return &models.FinancialStats{
		Daily:       row.Daily.Round(2).InexactFloat64(),
		Weekly:      row.Weekly.Round(2).InexactFloat64(),
		Monthly:     row.Monthly.Round(2).InexactFloat64(),
		TotalOrders: row.TotalOrders,
	}, nil
}
