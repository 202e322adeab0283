package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"qstrategy/internal/logger"
	"qstrategy/trader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// scriptedStrategy 让测试逐用例注入回调行为。
type scriptedStrategy struct {
	StrategyBase
	initErr error
	quot    func(ctx *Context, evt string, payload map[string]any) (any, error)
}

func (s *scriptedStrategy) Name() string { return "ScriptedStrategy" }

func (s *scriptedStrategy) OnInit(_ *Context, _ map[string]any) error { return s.initErr }

func (s *scriptedStrategy) OnQuot(ctx *Context, evt string, payload map[string]any) (any, error) {
	if s.quot != nil {
		return s.quot(ctx, evt, payload)
	}
	return nil, nil
}

// captureLog 把进程级日志重定向到内存，用例结束后还原。
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })
	return buf
}

func TestDispatchUnknownOp(t *testing.T) {
	s := NewStrategy(&scriptedStrategy{})
	res := s.Dispatch("", "rebalance", "", "")
	assert.False(t, res.Ack)
	assert.Nil(t, res.Body)
}

func TestDispatchLifecycle(t *testing.T) {
	t.Run("init opens per-instance log", func(t *testing.T) {
		dir := t.TempDir()
		s := NewStrategy(&scriptedStrategy{})
		payload := fmt.Sprintf(`{"log_path":%q,"log_level":"debug"}`, dir)

		res := s.Dispatch("", OpInit, "", payload)
		assert.True(t, res.Ack)
		_, err := os.Stat(filepath.Join(dir, RoleStrategy, "ScriptedStrategy.log"))
		assert.NoError(t, err)

		res = s.Dispatch("", OpDestroy, "", "")
		assert.True(t, res.Ack)
	})

	t.Run("init without log_path still succeeds", func(t *testing.T) {
		s := NewStrategy(&scriptedStrategy{})
		res := s.Dispatch("", OpInit, "", "")
		assert.True(t, res.Ack)
	})

	t.Run("hook error demoted to false", func(t *testing.T) {
		buf := captureLog(t)
		s := NewStrategy(&scriptedStrategy{initErr: errors.New("no feed")})
		res := s.Dispatch("", OpInit, "", "")
		assert.False(t, res.Ack)
		assert.Contains(t, buf.String(), "handler failed")
	})
}

func TestDispatchContainsHandlerFailure(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		buf := captureLog(t)
		s := NewStrategy(&scriptedStrategy{quot: func(*Context, string, map[string]any) (any, error) {
			return nil, errors.New("feed gap")
		}})
		res := s.Dispatch("", OpOnQuot, "quot", "{}")
		assert.False(t, res.Ack)
		assert.Nil(t, res.Body)
		assert.Contains(t, buf.String(), "feed gap")
	})

	t.Run("panic", func(t *testing.T) {
		buf := captureLog(t)
		s := NewStrategy(&scriptedStrategy{quot: func(*Context, string, map[string]any) (any, error) {
			panic("nil bar")
		}})
		res := s.Dispatch("", OpOnQuot, "quot", "{}")
		assert.Nil(t, res.Body)
		assert.Contains(t, buf.String(), "nil bar")
	})
}

func TestDispatchBadInput(t *testing.T) {
	t.Run("payload not json", func(t *testing.T) {
		buf := captureLog(t)
		called := false
		s := NewStrategy(&scriptedStrategy{quot: func(*Context, string, map[string]any) (any, error) {
			called = true
			return nil, nil
		}})
		res := s.Dispatch("", OpOnQuot, "quot", "{oops")
		assert.Nil(t, res.Body)
		assert.False(t, called)
		assert.Contains(t, buf.String(), "handler failed")
	})

	t.Run("account not json", func(t *testing.T) {
		captureLog(t)
		s := NewStrategy(&scriptedStrategy{})
		res := s.Dispatch(`{"account_id":`, OpOnQuot, "quot", "{}")
		assert.Nil(t, res.Body)
	})
}

func TestDispatchAccountBinding(t *testing.T) {
	var seen *trader.Account
	s := NewStrategy(&scriptedStrategy{quot: func(ctx *Context, _ string, _ map[string]any) (any, error) {
		seen = ctx.Account
		return nil, nil
	}})

	s.Dispatch(`{"account_id":"acct-9","cash_available":5000}`, OpOnQuot, "quot", "")
	require.NotNil(t, seen)
	assert.Equal(t, "acct-9", seen.AccountID)
	assert.Equal(t, 5000.0, seen.CashAvailable)

	// 账户只随单次调用存在，下一次没带就没有。
	s.Dispatch("", OpOnQuot, "quot", "")
	assert.Nil(t, seen)
}

func TestDispatchResultNormalization(t *testing.T) {
	dispatchWith := func(out any) Result {
		s := NewStrategy(&scriptedStrategy{quot: func(*Context, string, map[string]any) (any, error) {
			return out, nil
		}})
		return s.Dispatch("", OpOnQuot, "quot", "")
	}

	t.Run("signal becomes one-element array", func(t *testing.T) {
		res := dispatchWith(trader.BuySignal("sh600036", "招商银行", 38.5, 100, ""))
		arr := gjson.ParseBytes(res.Body).Array()
		require.Len(t, arr, 1)
		assert.Equal(t, "buy", arr[0].Get("signal").String())
	})

	t.Run("code string becomes one-element array", func(t *testing.T) {
		res := dispatchWith("sh600036")
		assert.JSONEq(t, `["sh600036"]`, string(res.Body))
	})

	t.Run("nil means no body", func(t *testing.T) {
		res := dispatchWith(nil)
		assert.Nil(t, res.Body)
	})

	t.Run("unsupported shape discarded", func(t *testing.T) {
		buf := captureLog(t)
		res := dispatchWith(42)
		assert.Nil(t, res.Body)
		assert.Contains(t, buf.String(), "unsupported shape")
	})
}

func TestGetUUID(t *testing.T) {
	a, b := GetUUID(), GetUUID()
	assert.Len(t, a, 32)
	assert.NotContains(t, a, "-")
	assert.NotEqual(t, a, b)
}
