package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/healthtab/internal/domain"
)

// parseNullableDate parses a sql.NullString holding "YYYY-MM-DD".
// Returns nil if the value is NULL or empty.
func parseNullableDate(s sql.NullString) (*domain.Date, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// nullableDateToString converts a *domain.Date to a value suitable for
// SQLite storage, nil becoming SQL NULL.
func nullableDateToString(d *domain.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
