package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/slen516-afk/fraudboard/internal/domain/model"
	"github.com/slen516-afk/fraudboard/pkg/logger"
	"github.com/slen516-afk/fraudboard/pkg/metrics"
)

// Store defaults.
const (
	defaultTable        = "temp_raw_data"
	defaultBatchSize    = 500
	defaultMaxOpenConns = 10

	mysqlBadFieldError = 1054    // ER_BAD_FIELD_ERROR
	pgUndefinedColumn  = "42703" // undefined_column
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLStore reads postings through database/sql. Fetch and Ping go through a
// circuit breaker so a dead upstream is not hammered on every request.
type SQLStore struct {
	db      *sql.DB
	breaker *gobreaker.CircuitBreaker[any]
	logger  logger.Logger

	driver           string
	table            string
	selectQuery      string
	batchSize        int
	maxOpenConns     int
	breakerThreshold uint32
	breakerTimeout   time.Duration
}

var _ Store = (*SQLStore)(nil)

// Open opens a connection pool for driver and wraps it in a SQLStore.
func Open(driver, dsn string, opts ...Option) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	s, err := New(db, append([]Option{WithDriver(driver)}, opts...)...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(s.maxOpenConns)
	db.SetMaxIdleConns(s.maxOpenConns)
	return s, nil
}

// New wraps an existing pool.
func New(db *sql.DB, opts ...Option) (*SQLStore, error) {
	s := &SQLStore{
		db:               db,
		driver:           DriverMySQL,
		table:            defaultTable,
		batchSize:        defaultBatchSize,
		maxOpenConns:     defaultMaxOpenConns,
		breakerThreshold: defaultBreakerThreshold,
		breakerTimeout:   defaultBreakerTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if !identRe.MatchString(s.table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, s.table)
	}
	if s.logger == nil {
		s.logger = logger.Named("repository")
	}
	s.selectQuery = "SELECT " + strings.Join(model.RequiredColumns, ", ") + " FROM " + s.table
	s.breaker = newBreaker("store:"+s.table, s.breakerThreshold, s.breakerTimeout, s.logger)
	return s, nil
}

// Fetch reads all postings in one query.
func (s *SQLStore) Fetch(ctx context.Context) (model.Table, error) {
	start := time.Now()
	v, err := s.breaker.Execute(func() (any, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		return model.Table{}, s.fail(ctx, "fetch", err)
	}
	t := v.(model.Table)
	metrics.RecordFetch(len(t.Records), float64(time.Since(start).Microseconds())/1000)
	s.logger.Debug(ctx, "fetched postings",
		logger.Int("rows", len(t.Records)),
		logger.Duration("took", time.Since(start)),
	)
	return t, nil
}

func (s *SQLStore) fetch(ctx context.Context) (model.Table, error) {
	rows, err := s.db.QueryContext(ctx, s.selectQuery)
	if err != nil {
		if se := schemaErrorFrom(err); se != nil {
			return model.Table{}, se
		}
		return model.Table{}, fmt.Errorf("%w: query %s: %w", ErrFetch, s.table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return model.Table{}, fmt.Errorf("%w: columns: %w", ErrFetch, err)
	}
	if err := model.CheckColumns(cols); err != nil {
		return model.Table{}, err
	}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	records := make([]model.Record, 0)
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return model.Table{}, fmt.Errorf("%w: scan: %w", ErrFetch, err)
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		records = append(records, model.RecordFromRow(row))
	}
	if err := rows.Err(); err != nil {
		return model.Table{}, fmt.Errorf("%w: rows: %w", ErrFetch, err)
	}
	return model.Table{Columns: cols, Records: records}, nil
}

// Ping checks connectivity with a round trip.
func (s *SQLStore) Ping(ctx context.Context) error {
	_, err := s.breaker.Execute(func() (any, error) {
		if err := s.db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("%w: ping: %w", ErrFetch, err)
		}
		return nil, nil
	})
	if err != nil {
		return s.fail(ctx, "ping", err)
	}
	return nil
}

// Insert writes records in batches inside one transaction.
func (s *SQLStore) Insert(ctx context.Context, records []model.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	start := time.Now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin: %w", ErrInsert, err)
	}
	written := 0
	for lo := 0; lo < len(records); lo += s.batchSize {
		hi := min(lo+s.batchSize, len(records))
		batch := records[lo:hi]
		args := make([]any, 0, len(batch)*len(model.RequiredColumns))
		for _, r := range batch {
			args = append(args, r.Values()...)
		}
		res, err := tx.ExecContext(ctx, s.insertQuery(len(batch)), args...)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("%w: exec: %w", ErrInsert, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			n = int64(len(batch))
		}
		written += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %w", ErrInsert, err)
	}
	metrics.RecordInsert(written, float64(time.Since(start).Microseconds())/1000)
	s.logger.Info(ctx, "inserted postings",
		logger.Int("rows", written),
		logger.String("table", s.table),
	)
	return written, nil
}

// insertQuery builds a multi-row INSERT with the driver's placeholder style.
func (s *SQLStore) insertQuery(rows int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(s.table)
	b.WriteString(" (")
	b.WriteString(strings.Join(model.RequiredColumns, ", "))
	b.WriteString(") VALUES ")
	n := 0
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := range model.RequiredColumns {
			if j > 0 {
				b.WriteString(", ")
			}
			n++
			if s.driver == DriverPostgres {
				b.WriteString("$" + strconv.Itoa(n))
			} else {
				b.WriteByte('?')
			}
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Close closes the pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// BreakerState returns the breaker state name: "closed", "half-open" or "open".
func (s *SQLStore) BreakerState() string {
	return s.breaker.State().String()
}

// fail maps breaker rejections to ErrUnavailable and records metrics.
func (s *SQLStore) fail(ctx context.Context, op string, err error) error {
	var se *model.SchemaError
	switch {
	case isRejection(err):
		metrics.RecordBreakerRejection()
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
	case errors.As(err, &se):
		metrics.RecordSchemaError(se.Field)
		return err
	default:
		metrics.RecordFetchError()
		s.logger.Error(ctx, "store call failed", logger.String("op", op), logger.Error(err))
		return err
	}
}

// schemaErrorFrom recognizes the drivers' "unknown column" errors.
func schemaErrorFrom(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlBadFieldError {
		return &model.SchemaError{Field: quotedName(me.Message, '\'')}
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) && pe.Code == pgUndefinedColumn {
		return &model.SchemaError{Field: quotedName(pe.Message, '"')}
	}
	return nil
}

// quotedName extracts the first q-quoted name in msg, without any table prefix.
func quotedName(msg string, q byte) string {
	i := strings.IndexByte(msg, q)
	if i < 0 {
		return msg
	}
	rest := msg[i+1:]
	j := strings.IndexByte(rest, q)
	if j < 0 {
		return msg
	}
	name := rest[:j]
	if k := strings.LastIndexByte(name, '.'); k >= 0 {
		name = name[k+1:]
	}
	return name
}
