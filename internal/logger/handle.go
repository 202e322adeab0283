package logger

import (
	"io"
	"os"

	"log/slog"
)

// Handle 是单个插件实例的日志句柄：独立文件、独立级别，
// destroy 时由派发核心关闭。
type Handle struct {
	*slog.Logger
	file *os.File
}

// Open appends to file and returns a handle whose output also mirrors
// to stdout. The caller owns the directory; Open only touches the file.
func Open(file, level string) (*Handle, error) {
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	lv := new(slog.LevelVar)
	lv.Set(parseLevel(level))
	l := slog.New(slog.NewTextHandler(io.MultiWriter(os.Stdout, f), &slog.HandlerOptions{Level: lv}))
	return &Handle{Logger: l, file: f}, nil
}

// Close releases the underlying file. Safe to call more than once.
func (h *Handle) Close() error {
	if h == nil || h.file == nil {
		return nil
	}
	f := h.file
	h.file = nil
	return f.Close()
}
