package store

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"qstrategy/internal/logger"

	"gorm.io/gorm"
)

const retryAttempts = 5

var (
	retryBackoff = time.Second
	sleep        = time.Sleep // swapped out in tests
)

// IsTransient reports whether err is a connection-class failure worth a
// reconnect-and-retry. Everything else is fatal and surfaces immediately.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, gorm.ErrInvalidDB) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database is busy") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "bad connection")
}

// withRetry 连接类故障时重连并重试，退避 1s 起倍增，最多 5 次，
// 耗尽后把最后的错误原样抛出。非瞬时错误从不重试。
func (s *Store) withRetry(op func(db *gorm.DB) error) error {
	backoff := retryBackoff
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = op(s.db)
		if err == nil || !IsTransient(err) {
			return err
		}
		if attempt == retryAttempts {
			break
		}
		logger.Errorf("store: lost connection, retrying in %s (attempt %d/%d): %v", backoff, attempt, retryAttempts, err)
		sleep(backoff)
		backoff *= 2
		if rerr := s.connect(); rerr != nil {
			logger.Errorf("store: reconnect failed: %v", rerr)
		}
	}
	return err
}
