package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bootyhunt/server/pkg/logger"
	"github.com/bootyhunt/server/pkg/metrics"
)

const defaultBusyTimeout = 5 * time.Second

// SQLiteStore implements Store on a single serialized SQLite connection.
// The connection pool is capped at one open connection, so statement
// sequences execute one at a time and the conditional writes below decide
// races by affected-row count or uniqueness constraint, never by a prior
// read.
type SQLiteStore struct {
	db          *gorm.DB
	path        string
	busyTimeout time.Duration
	log         logger.Logger
}

// New opens the store and migrates its tables. An empty path opens a
// process-private in-memory database.
func New(ctx context.Context, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{
		busyTimeout: defaultBusyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	dsn := s.dsn()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	// One connection, held open for the process lifetime. This is the
	// serialization point for every statement sequence.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := db.WithContext(ctx).AutoMigrate(
		&Run{},
		&RegattaSeed{},
		&SignalFire{},
		&TideOmen{},
		&TideContribution{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	s.db = db
	if s.log != nil {
		s.log.Info(ctx, "store opened", logger.String("dsn", dsn))
	}
	return s, nil
}

func (s *SQLiteStore) dsn() string {
	busyMs := s.busyTimeout.Milliseconds()
	if s.path == "" {
		// Unique name per store so separate opens (tests) do not share state.
		return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(%d)",
			uuid.NewString(), busyMs)
	}
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		s.path, busyMs)
}

// observe records the latency of one store operation.
func observe(op string, start time.Time) {
	metrics.RecordStoreOpDuration(op, float64(time.Since(start).Milliseconds()))
}

func (s *SQLiteStore) InsertRun(ctx context.Context, run *Run) error {
	defer observe("insert_run", time.Now())
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CountRunsScoringAbove(ctx context.Context, score int64) (int64, error) {
	defer observe("count_runs_above", time.Now())
	var n int64
	err := s.db.WithContext(ctx).Model(&Run{}).Where("score > ?", score).Count(&n).Error
	if err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) TopRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	defer observe("top_runs", time.Now())
	stmt := s.db.WithContext(ctx).Model(&Run{})
	if filter.WeekKey != "" {
		stmt = stmt.Where("week_key = ?", filter.WeekKey)
	}
	if filter.Seed != nil {
		stmt = stmt.Where("seed = ?", *filter.Seed)
	}
	var runs []Run
	if err := stmt.Order("score DESC").Limit(filter.Limit).Find(&runs).Error; err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return runs, nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	defer observe("get_run", time.Now())
	var run Run
	err := s.db.WithContext(ctx).First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}

func (s *SQLiteStore) EnsureRegattaSeed(ctx context.Context, weekKey string, seed int64) (int64, error) {
	defer observe("ensure_regatta_seed", time.Now())

	// Insert-if-absent. A concurrent first-of-week writer racing here is
	// expected; the conflict is swallowed and resolved by the read below.
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&RegattaSeed{WeekKey: weekKey, Seed: seed}).Error
	if err != nil && !isDuplicate(err) {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("insert regatta seed: %w", err)
	}

	var row RegattaSeed
	if err := s.db.WithContext(ctx).First(&row, "week_key = ?", weekKey).Error; err != nil {
		metrics.RecordStoreError()
		return 0, fmt.Errorf("read regatta seed: %w", err)
	}
	return row.Seed, nil
}

func (s *SQLiteStore) InsertSignalFire(ctx context.Context, fire *SignalFire) error {
	defer observe("insert_signal_fire", time.Now())
	if err := s.db.WithContext(ctx).Create(fire).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateCode
		}
		metrics.RecordStoreError()
		return fmt.Errorf("insert signal fire: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RedeemSignalFire(ctx context.Context, code string, now time.Time) (*SignalFire, error) {
	defer observe("redeem_signal_fire", time.Now())

	// Single conditional update: the store decides the race by affected-row
	// count. Expiry is checked inside the same atomic step.
	res := s.db.WithContext(ctx).Model(&SignalFire{}).
		Where("code = ? AND redeemed = ? AND expires_at > ?", code, false, now).
		Updates(map[string]any{"redeemed": true, "redeemed_at": now})
	if res.Error != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("redeem signal fire: %w", res.Error)
	}

	var fire SignalFire
	err := s.db.WithContext(ctx).First(&fire, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("read signal fire: %w", err)
	}

	if res.RowsAffected == 1 {
		return &fire, nil
	}

	// The transition did not happen for this caller. The row state tells why;
	// this read only classifies the refusal, it never gates the transition.
	if fire.Redeemed {
		return nil, ErrAlreadyRedeemed
	}
	return nil, ErrExpired
}

func (s *SQLiteStore) EnsureTideOmen(ctx context.Context, o *TideOmen) (*TideOmen, error) {
	defer observe("ensure_tide_omen", time.Now())

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(o).Error
	if err != nil && !isDuplicate(err) {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("insert tide omen: %w", err)
	}

	var row TideOmen
	if err := s.db.WithContext(ctx).First(&row, "week_key = ?", o.WeekKey).Error; err != nil {
		metrics.RecordStoreError()
		return nil, fmt.Errorf("read tide omen: %w", err)
	}
	return &row, nil
}

func (s *SQLiteStore) InsertTideContribution(ctx context.Context, c *TideContribution) error {
	defer observe("insert_tide_contribution", time.Now())
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		metrics.RecordStoreError()
		return fmt.Errorf("insert tide contribution: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}

// isDuplicate reports whether err is a uniqueness-constraint violation.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed")
}
