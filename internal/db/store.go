package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salesops-hq/backend/internal/models"
)

// Store keeps the raw activity feed. Columns stay text on purpose: the feed
// is loosely typed and normalization happens in the service layer, so an
// unparseable amount must survive import instead of failing it.
type Store struct {
	Pool *pgxpool.Pool
}

// ActivityRow is one feed row as imported, all fields verbatim.
type ActivityRow struct {
	ID              string
	CompanyName     string
	ContactPerson   string
	ContactNumber   string
	ReferenceID     string
	Manager         string
	TSM             string
	Source          string
	TypeActivity    string
	CallStatus      string
	ActivityStatus  string
	QuotationNumber string
	QuotationAmount string
	SONumber        string
	SOAmount        string
	ActualSales     string
	DateCreated     string
	StartDate       string
	EndDate         string
	ImportedAt      time.Time
}

var activityColumns = []string{
	"id", "companyname", "contactperson", "contactnumber",
	"referenceid", "manager", "tsm",
	"source", "typeactivity", "callstatus", "activitystatus",
	"quotationnumber", "quotationamount", "sonumber", "soamount", "actualsales",
	"date_created", "startdate", "enddate", "imported_at",
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ReplaceActivities swaps the whole feed in one transaction so a metrics
// request either sees the old snapshot or the new one, never a mix.
func (s *Store) ReplaceActivities(ctx context.Context, activities []ActivityRow) (int64, error) {
	var inserted int64
	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `TRUNCATE activities`); err != nil {
			return err
		}
		rows := make([][]any, 0, len(activities))
		for _, a := range activities {
			rows = append(rows, []any{
				a.ID, a.CompanyName, a.ContactPerson, a.ContactNumber,
				a.ReferenceID, a.Manager, a.TSM,
				a.Source, a.TypeActivity, a.CallStatus, a.ActivityStatus,
				a.QuotationNumber, a.QuotationAmount, a.SONumber, a.SOAmount, a.ActualSales,
				a.DateCreated, a.StartDate, a.EndDate, a.ImportedAt,
			})
		}
		count, err := tx.CopyFrom(ctx, pgx.Identifier{"activities"}, activityColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return err
		}
		inserted = count
		return nil
	})
	return inserted, err
}

// ActivitySnapshot returns every stored row in feed shape, ready for the
// normalizer.
func (s *Store) ActivitySnapshot(ctx context.Context) ([]models.RawActivity, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+selectList+` FROM activities ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRawActivities(rows)
}

// ListActivities pages through the stored feed for the listing endpoint.
func (s *Store) ListActivities(ctx context.Context, q string, limit, offset int) ([]models.RawActivity, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.Pool.Query(ctx,
		`SELECT `+selectList+` FROM activities
		 WHERE ($1 = '' OR companyname ILIKE '%' || $1 || '%' OR contactperson ILIKE '%' || $1 || '%')
		 ORDER BY date_created DESC, id
		 LIMIT $2 OFFSET $3`,
		q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRawActivities(rows)
}

// SnapshotVersion identifies the current feed contents: row count plus the
// time of the latest import.
func (s *Store) SnapshotVersion(ctx context.Context) (string, error) {
	var count int64
	var latest *time.Time
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(*), MAX(imported_at) FROM activities`).Scan(&count, &latest); err != nil {
		return "", err
	}
	if latest == nil {
		return fmt.Sprintf("db-%d-empty", count), nil
	}
	return fmt.Sprintf("db-%d-%d", count, latest.UTC().UnixNano()), nil
}

const selectList = "id, companyname, contactperson, contactnumber, referenceid, manager, tsm, " +
	"source, typeactivity, callstatus, activitystatus, " +
	"quotationnumber, quotationamount, sonumber, soamount, actualsales, " +
	"date_created, startdate, enddate"

func scanRawActivities(rows pgx.Rows) ([]models.RawActivity, error) {
	var out []models.RawActivity
	for rows.Next() {
		var a ActivityRow
		if err := rows.Scan(
			&a.ID, &a.CompanyName, &a.ContactPerson, &a.ContactNumber,
			&a.ReferenceID, &a.Manager, &a.TSM,
			&a.Source, &a.TypeActivity, &a.CallStatus, &a.ActivityStatus,
			&a.QuotationNumber, &a.QuotationAmount, &a.SONumber, &a.SOAmount, &a.ActualSales,
			&a.DateCreated, &a.StartDate, &a.EndDate,
		); err != nil {
			return nil, err
		}
		out = append(out, models.RawActivity{
			"id":              a.ID,
			"companyname":     a.CompanyName,
			"contactperson":   a.ContactPerson,
			"contactnumber":   a.ContactNumber,
			"referenceid":     a.ReferenceID,
			"manager":         a.Manager,
			"tsm":             a.TSM,
			"source":          a.Source,
			"typeactivity":    a.TypeActivity,
			"callstatus":      a.CallStatus,
			"activitystatus":  a.ActivityStatus,
			"quotationnumber": a.QuotationNumber,
			"quotationamount": a.QuotationAmount,
			"sonumber":        a.SONumber,
			"soamount":        a.SOAmount,
			"actualsales":     a.ActualSales,
			"date_created":    a.DateCreated,
			"startdate":       a.StartDate,
			"enddate":         a.EndDate,
		})
	}
	return out, rows.Err()
}
