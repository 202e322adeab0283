package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchReload(t *testing.T) {
	path := writeConfig(t, map[string]any{
		"log": map[string]any{"level": "info"},
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 1)
	require.NoError(t, Watch(ctx, path, func(cfg *Config) {
		select {
		case got <- cfg:
		default:
		}
	}))

	next := []byte("log:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, next, 0o644))

	select {
	case cfg := <-got:
		require.Equal(t, "debug", cfg.Log.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}
}

func TestWatchSkipsMalformedEdit(t *testing.T) {
	path := writeConfig(t, map[string]any{
		"log": map[string]any{"level": "info"},
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan *Config, 4)
	require.NoError(t, Watch(ctx, path, func(cfg *Config) { got <- cfg }))

	require.NoError(t, os.WriteFile(path, []byte("log: [broken\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	// 坏编辑被跳过，收到的第一份有效配置来自第二次写入。
	select {
	case cfg := <-got:
		require.Equal(t, "warn", cfg.Log.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}
}
