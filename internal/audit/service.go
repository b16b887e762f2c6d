// Package audit records a best-effort trail of item mutations. Audit
// failures are logged and reported as values; they never fail the request
// that triggered them.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"itemtrail/internal/metrics"
	"itemtrail/internal/models"
)

// typedColumns are the denormalized projection of payload keys kept for
// indexed queries. "name" and "request_id" live only in the payload.
var typedColumns = []string{"user_id", "ip", "method", "user_agent", "request_path"}

// Result reports the outcome of one audit insertion. Err is carried as a
// value so tests and diagnostics can assert on failures without them ever
// crossing into the request path.
type Result struct {
	Success bool
	ID      int64
	Err     error
}

// Service writes audit rows in transactions of its own, isolated from the
// caller's request transaction.
type Service struct {
	db     *gorm.DB
	table  string
	logger *log.Logger

	mu    sync.Mutex
	ready map[*sql.DB]struct{}
}

// New returns a Service writing to the named table on db.
func New(db *gorm.DB, table string, logger *log.Logger) *Service {
	if table == "" {
		table = models.ItemAudit{}.TableName()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		db:     db,
		table:  table,
		logger: logger,
		ready:  make(map[*sql.DB]struct{}),
	}
}

// Insert records one audit row for an item mutation. Steps: ensure the table
// exists (cached per connection identity), insert the row with absent typed
// columns omitted, recover the generated id, then opportunistically backfill
// typed columns from older payloads. Every failure is caught, logged and
// returned inside the Result.
func (s *Service) Insert(ctx context.Context, itemID int64, payload map[string]interface{}) Result {
	if err := s.ensureTable(ctx); err != nil {
		s.logger.Printf("audit: failed to ensure table %s: %v", s.table, err)
		metrics.ObserveAudit(false)
		return Result{Err: fmt.Errorf("ensure audit table: %w", err)}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Printf("audit: could not encode payload for item %d: %v", itemID, err)
		metrics.ObserveAudit(false)
		return Result{Err: fmt.Errorf("encode audit payload: %w", err)}
	}

	rec := models.ItemAudit{
		ItemID:    &itemID,
		Action:    "create",
		Payload:   datatypes.JSON(raw),
		CreatedAt: time.Now().UTC(),
	}
	// Only write typed columns that are actually present, so column defaults
	// are never clobbered with explicit nulls.
	cols := []string{"item_id", "action", "payload", "created_at"}
	if v := stringField(payload, "user_id"); v != nil {
		rec.UserID = v
		cols = append(cols, "user_id")
	}
	if v := stringField(payload, "ip"); v != nil {
		rec.IP = v
		cols = append(cols, "ip")
	}
	if v := stringField(payload, "method"); v != nil {
		rec.Method = v
		cols = append(cols, "method")
	}
	if v := stringField(payload, "user_agent"); v != nil {
		rec.UserAgent = v
		cols = append(cols, "user_agent")
	}
	if v := stringField(payload, "request_path"); v != nil {
		rec.RequestPath = v
		cols = append(cols, "request_path")
	}

	// Own transaction: a caller rollback cannot drop audit data and an audit
	// failure cannot roll back the committed item.
	session := s.db.WithContext(ctx).Session(&gorm.Session{NewDB: true})
	err = session.Transaction(func(tx *gorm.DB) error {
		return tx.Table(s.table).Select(cols).Create(&rec).Error
	})
	if err != nil {
		s.logger.Printf("audit: insert failed for item %d: %v", itemID, err)
		metrics.ObserveAudit(false)
		return Result{Err: fmt.Errorf("audit insert: %w", err)}
	}

	// Dialects with insert-returning populate the id in the insert itself;
	// otherwise recover it with a last-id query. Best effort only: the
	// re-query has a narrow race under concurrent inserts.
	if rec.ID == 0 {
		var last int64
		if err := session.Table(s.table).Select("id").Order("id DESC").Limit(1).Scan(&last).Error; err != nil {
			s.logger.Printf("audit: could not recover id after insert for item %d: %v", itemID, err)
		} else {
			rec.ID = last
		}
	}

	if err := s.backfill(ctx); err != nil {
		s.logger.Printf("audit: backfill failed: %v", err)
	}

	metrics.ObserveAudit(true)
	return Result{Success: true, ID: rec.ID}
}

// ensureTable creates the audit table when missing. The check is cached per
// underlying connection pool, not per DSN: distinct in-memory test databases
// can share a URL without sharing state.
func (s *Service) ensureTable(ctx context.Context) error {
	key, err := s.db.DB()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ready[key]; ok {
		return nil
	}

	gdb := s.db.WithContext(ctx)
	if !gdb.Migrator().HasTable(s.table) {
		if err := gdb.Table(s.table).AutoMigrate(&models.ItemAudit{}); err != nil {
			return err
		}
	}
	s.ready[key] = struct{}{}
	return nil
}

// backfill copies payload values into typed columns that are still null.
// Idempotent; safe to run on every insert. Skipped on dialects without a
// JSON extraction operator.
func (s *Service) backfill(ctx context.Context) error {
	var extract string
	switch s.db.Dialector.Name() {
	case "postgres":
		extract = "payload ->> '%s'"
	case "mysql":
		extract = "JSON_UNQUOTE(JSON_EXTRACT(payload, '$.%s'))"
	case "sqlite":
		extract = "json_extract(payload, '$.%s')"
	default:
		return nil
	}

	sets := make([]string, 0, len(typedColumns))
	nulls := make([]string, 0, len(typedColumns))
	for _, col := range typedColumns {
		expr := fmt.Sprintf(extract, col)
		sets = append(sets, fmt.Sprintf("%s = COALESCE(%s, %s)", col, col, expr))
		nulls = append(nulls, col+" IS NULL")
	}

	stmt := fmt.Sprintf(
		"UPDATE %s SET %s WHERE payload IS NOT NULL AND (%s)",
		s.table, strings.Join(sets, ", "), strings.Join(nulls, " OR "),
	)
	return s.db.WithContext(ctx).Session(&gorm.Session{NewDB: true}).Exec(stmt).Error
}

func stringField(payload map[string]interface{}, key string) *string {
	if v, ok := payload[key]; ok {
		if str, ok := v.(string); ok && str != "" {
			return &str
		}
	}
	return nil
}
