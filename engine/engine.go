package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"log/slog"

	"qstrategy/internal/logger"
	"qstrategy/trader"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"
)

// Handler is one registered dispatch operation.
type Handler func(ctx *Context, evt string, payload map[string]any) (any, error)

// Hooks is the lifecycle surface every role implements.
type Hooks interface {
	Name() string
	OnInit(ctx *Context, opt map[string]any) error
	OnDestroy(ctx *Context) error
}

// Context 携带一次派发调用的上下文：日志句柄、账户快照（可能为 nil）
// 与 broker 角色的事件出口。调用结束即失效。
type Context struct {
	Log     *slog.Logger
	Account *trader.Account
	emit    func(kind string, event any)
}

// Emit forwards a broker event to the outbound buffer. It is a no-op
// for roles without one.
func (c *Context) Emit(kind string, event any) {
	if c.emit != nil {
		c.emit(kind, event)
	}
}

// Result is the host-facing outcome of one dispatch call. The zero
// value means "no response this cycle".
type Result struct {
	Ack  bool   // init/destroy acknowledgment
	Body []byte // serialized result array, nil when there is nothing to return
}

// Core 是各角色共享的派发核心：按符号名路由处理器、水合账户状态、
// 解码 payload、收容处理器异常并把返回值编码成统一线上格式。
// 宿主保证对单个实例串行调用，Core 自身不加锁。
type Core struct {
	role     string
	name     string
	handlers map[string]Handler
	hooks    Hooks
	log      *logger.Handle
	account  *trader.Account
	emitFn   func(kind string, event any)
}

func newCore(role string, hooks Hooks) *Core {
	c := &Core{
		role:     role,
		name:     hooks.Name(),
		handlers: make(map[string]Handler),
		hooks:    hooks,
	}
	c.handlers[OpInit] = c.handleInit
	c.handlers[OpDestroy] = c.handleDestroy
	return c
}

func (c *Core) register(op string, h Handler) {
	c.handlers[op] = h
}

// Name is the plugin's class-derived name, also its log file name.
func (c *Core) Name() string { return c.name }

// Role is the role tag supplied at construction.
func (c *Core) Role() string { return c.role }

// Dispatch 处理宿主的一次调用。未注册的操作名静默忽略；处理器抛出的
// 任何错误都被收容：init/destroy 降级为 false，其余操作降级为无结果，
// 错误只进日志，绝不穿透回宿主。
func (c *Core) Dispatch(account, op, evt, payload string) Result {
	h, ok := c.handlers[op]
	if !ok {
		return Result{}
	}
	lifecycle := op == OpInit || op == OpDestroy

	out, err := c.invoke(h, account, evt, payload)
	c.account = nil
	if err != nil {
		c.logger().Error("handler failed", "op", op, "event", evt, "error", err.Error())
		if lifecycle {
			return Result{Ack: false}
		}
		return Result{}
	}
	if lifecycle {
		ack, _ := out.(bool)
		return Result{Ack: ack}
	}
	body, err := trader.EncodeResults(out)
	if err != nil {
		if errors.Is(err, trader.ErrResultShape) {
			c.logger().Warn("discarding result with unsupported shape", "op", op, "event", evt)
			return Result{}
		}
		c.logger().Error("encode result failed", "op", op, "event", evt, "error", err.Error())
		return Result{}
	}
	return Result{Body: body}
}

func (c *Core) invoke(h Handler, account, evt, payload string) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	if account != "" {
		acct, derr := trader.DecodeAccount([]byte(account))
		if derr != nil {
			return nil, derr
		}
		c.account = acct
	}
	var data map[string]any
	if payload != "" {
		if !gjson.Valid(payload) {
			return nil, fmt.Errorf("payload is not valid json")
		}
		if jerr := json.Unmarshal([]byte(payload), &data); jerr != nil {
			return nil, fmt.Errorf("payload is not an object: %w", jerr)
		}
	}
	return h(c.context(), evt, data)
}

func (c *Core) context() *Context {
	return &Context{Log: c.logger(), Account: c.account, emit: c.emitFn}
}

func (c *Core) logger() *slog.Logger {
	if c.log != nil {
		return c.log.Logger
	}
	return logger.Default().With("plugin", c.name)
}

type initOptions struct {
	LogPath  string `mapstructure:"log_path"`
	LogLevel string `mapstructure:"log_level"`
}

// handleInit 先按角色与实例名建好日志落点，再交给角色的 OnInit。
// 任何一步失败都让宿主拿到 false，将插件视为不可用。
func (c *Core) handleInit(_ *Context, _ string, opt map[string]any) (any, error) {
	opts := initOptions{LogLevel: "info"}
	if opt != nil {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &opts,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return false, err
		}
		if err := dec.Decode(opt); err != nil {
			return false, fmt.Errorf("bad init options: %w", err)
		}
	}
	if opts.LogPath != "" {
		dir := filepath.Join(opts.LogPath, c.role)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create log dir: %w", err)
		}
		handle, err := logger.Open(filepath.Join(dir, c.name+".log"), opts.LogLevel)
		if err != nil {
			return false, fmt.Errorf("open log sink: %w", err)
		}
		c.log = handle
	}
	if err := c.hooks.OnInit(c.context(), opt); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Core) handleDestroy(_ *Context, _ string, _ map[string]any) (any, error) {
	err := c.hooks.OnDestroy(c.context())
	if c.log != nil {
		if cerr := c.log.Close(); cerr != nil {
			c.logger().Warn("close log sink", "error", cerr.Error())
		}
		c.log = nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetUUID returns a dashless id for broker entrust ids and the like.
func GetUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Base provides no-op lifecycle hooks for plugins that do not need them.
type Base struct{}

func (Base) OnInit(*Context, map[string]any) error { return nil }
func (Base) OnDestroy(*Context) error              { return nil }
