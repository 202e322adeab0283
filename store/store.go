package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Store 只负责装卸平面参考数据，不承载业务逻辑。连接类故障按
// 指数退避重连重试，耗尽后才向调用方暴露。
type Store struct {
	db   *gorm.DB
	path string
}

// Open creates the directory tree if needed and connects the store.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	s := &Store{path: path}
	if err := s.connect(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) connect() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&cache=shared", s.path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&InstrumentInfo{}, &TradeDate{}); err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(2)
	s.db = db
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveInstrumentInfo upserts reference rows by code.
func (s *Store) SaveInstrumentInfo(ctx context.Context, rows []InstrumentInfo) error {
	if len(rows) == 0 {
		return nil
	}
	return s.withRetry(func(db *gorm.DB) error {
		return db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
	})
}

// LoadInstrumentInfo loads reference rows, all of them when codes is empty.
func (s *Store) LoadInstrumentInfo(ctx context.Context, codes []string) ([]InstrumentInfo, error) {
	var rows []InstrumentInfo
	err := s.withRetry(func(db *gorm.DB) error {
		q := db.WithContext(ctx).Order("code")
		if len(codes) > 0 {
			q = q.Where("code IN ?", codes)
		}
		return q.Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SaveTradeDates upserts calendar days.
func (s *Store) SaveTradeDates(ctx context.Context, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	rows := make([]TradeDate, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, TradeDate{Date: d})
	}
	return s.withRetry(func(db *gorm.DB) error {
		return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
}

// LoadTradeDates returns calendar days in [from, to], inclusive.
func (s *Store) LoadTradeDates(ctx context.Context, from, to string) ([]string, error) {
	var rows []TradeDate
	err := s.withRetry(func(db *gorm.DB) error {
		return db.WithContext(ctx).
			Where("date >= ? AND date <= ?", from, to).
			Order("date").
			Find(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(rows))
	for _, r := range rows {
		dates = append(dates, r.Date)
	}
	return dates, nil
}

// IsTradeDate reports whether date is in the calendar.
func (s *Store) IsTradeDate(ctx context.Context, date string) (bool, error) {
	var count int64
	err := s.withRetry(func(db *gorm.DB) error {
		return db.WithContext(ctx).Model(&TradeDate{}).Where("date = ?", date).Count(&count).Error
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
