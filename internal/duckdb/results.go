package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"math"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/ceilinglight/devaplot/internal/depth"
)

// Report view names stored in the view_name column of variant_reports.
const (
	ViewRelative = "relative"
	ViewAbsolute = "absolute"
)

// WriteDepthRows batch-inserts the depth table using the Appender API.
// Gap rows (NaN total) are stored with a NULL total_depth.
func (s *Store) WriteDepthRows(rows []depth.Row) error {
	if len(rows) == 0 {
		return nil
	}

	appender, closeConn, err := s.appender("depth_rows")
	if err != nil {
		return err
	}
	defer closeConn()
	defer appender.Close()

	for _, r := range rows {
		var total any
		if !math.IsNaN(r.Total) {
			total = r.Total
		}
		if err := appender.AppendRow(r.Pos, r.A, r.T, r.C, r.G, r.NoVariant, total); err != nil {
			return fmt.Errorf("append depth row: %w", err)
		}
	}

	return appender.Flush()
}

// WriteReports batch-inserts one report view under the given view name.
func (s *Store) WriteReports(view string, rows []depth.Report) error {
	if len(rows) == 0 {
		return nil
	}

	appender, closeConn, err := s.appender("variant_reports")
	if err != nil {
		return err
	}
	defer closeConn()
	defer appender.Close()

	for _, r := range rows {
		if err := appender.AppendRow(view, r.Pos, r.A, r.T, r.C, r.G); err != nil {
			return fmt.Errorf("append report row: %w", err)
		}
	}

	return appender.Flush()
}

// LookupDepthRow queries the stored depth table for a single position.
// Returns nil when the position is absent. A NULL total_depth round-trips
// back to NaN.
func (s *Store) LookupDepthRow(pos int64) (*depth.Row, error) {
	row := s.db.QueryRow(`SELECT pos, depth_a, depth_t, depth_c, depth_g, no_variant, total_depth
		FROM depth_rows WHERE pos = ?`, pos)

	var r depth.Row
	var total *float64
	err := row.Scan(&r.Pos, &r.A, &r.T, &r.C, &r.G, &r.NoVariant, &total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup depth row: %w", err)
	}
	if total != nil {
		r.Total = *total
	} else {
		r.Total = math.NaN()
	}
	return &r, nil
}

// LookupReports queries one stored report view in position order.
func (s *Store) LookupReports(view string) ([]depth.Report, error) {
	rows, err := s.db.Query(`SELECT pos, a, t, c, g FROM variant_reports
		WHERE view_name = ? ORDER BY pos`, view)
	if err != nil {
		return nil, fmt.Errorf("lookup reports: %w", err)
	}
	defer rows.Close()

	var reports []depth.Report
	for rows.Next() {
		var r depth.Report
		if err := rows.Scan(&r.Pos, &r.A, &r.T, &r.C, &r.G); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// Clear removes all stored results.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM depth_rows"); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM variant_reports")
	return err
}

func (s *Store) appender(table string) (*goduckdb.Appender, func(), error) {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("get connection: %w", err)
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("create appender: %w", err)
	}

	return appender, func() { conn.Close() }, nil
}
