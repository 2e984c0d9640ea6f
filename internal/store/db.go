package store

import (
	"context"
	"database/sql"
	"math"

	"adoption-eda/internal/model"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// DB is a SQLite file holding one exported filtered view.
type DB struct {
	db *sql.DB
}

// Open creates (or opens) the SQLite file at dbPath and ensures the export tables exist.
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	recordTable := `
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		year INTEGER NOT NULL,
		country TEXT NOT NULL,
		age_group TEXT NOT NULL,
		ai_tool TEXT NOT NULL,
		industry TEXT NOT NULL,
		company_size TEXT NOT NULL,
		adoption_rate REAL,
		daily_active_users REAL
	);
	`
	trendTable := `
	CREATE TABLE IF NOT EXISTS adoption_trend (
		year INTEGER NOT NULL,
		ai_tool TEXT NOT NULL,
		mean_adoption_rate REAL,
		record_count INTEGER NOT NULL,
		PRIMARY KEY (year, ai_tool)
	);
	`

	for _, ddl := range []string{recordTable, trendTable} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "failed to create table")
		}
	}
	return &DB{db: db}, nil
}

// Close closes the database.
func (s *DB) Close() error {
	return s.db.Close()
}

// SaveRecords inserts the records in one transaction.
func (s *DB) SaveRecords(ctx context.Context, records []model.Record) error {
	return s.inTx(ctx, `INSERT INTO records
		(year, country, age_group, ai_tool, industry, company_size, adoption_rate, daily_active_users)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, len(records), func(stmt *sql.Stmt, i int) error {
		r := records[i]
		_, err := stmt.ExecContext(ctx, r.Year, r.Country, r.AgeGroup, r.AITool, r.Industry, r.CompanySize, nullFloat(r.AdoptionRate), nullFloat(r.DailyActiveUsers))
		return err
	})
}

// SaveTrend replaces the grouped aggregate rows.
func (s *DB) SaveTrend(ctx context.Context, points []model.TrendPoint) error {
	return s.inTx(ctx, `INSERT OR REPLACE INTO adoption_trend
		(year, ai_tool, mean_adoption_rate, record_count) VALUES (?, ?, ?, ?)`, len(points), func(stmt *sql.Stmt, i int) error {
		p := points[i]
		_, err := stmt.ExecContext(ctx, p.Year, p.Tool, nullFloat(p.MeanAdoptionRate), p.RecordCount)
		return err
	})
}

func (s *DB) inTx(ctx context.Context, query string, n int, exec func(*sql.Stmt, int) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "failed to prepare insert")
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "failed to insert row %d", i)
		}
	}
	return errors.Wrap(tx.Commit(), "failed to commit")
}

// nullFloat stores a missing value as NULL.
func nullFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: !model.Missing(v)}
}

// CountRecords returns the number of exported records.
func (s *DB) CountRecords(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}

// ListTrend returns the stored aggregate ordered by year then tool.
func (s *DB) ListTrend(ctx context.Context) ([]model.TrendPoint, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT year, ai_tool, mean_adoption_rate, record_count
		FROM adoption_trend ORDER BY year, ai_tool`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []model.TrendPoint
	for rows.Next() {
		var p model.TrendPoint
		var mean sql.NullFloat64
		if err := rows.Scan(&p.Year, &p.Tool, &mean, &p.RecordCount); err != nil {
			return nil, err
		}
		p.MeanAdoptionRate = math.NaN()
		if mean.Valid {
			p.MeanAdoptionRate = mean.Float64
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
