package sqlite

import (
	"database/sql"
	"time"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToTimePtr safely converts sql.NullTime to *time.Time
func nullToTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}

// timePtrToNull safely converts *time.Time to sql.NullTime
func timePtrToNull(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// boolToInt converts bool to the 0/1 representation stored in SQLite
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
