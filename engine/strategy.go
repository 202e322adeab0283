package engine

// StrategyHooks 是策略插件的回调面。on_open/on_close 在交易时段边界
// 触发，可返回订阅代码或信号；on_quot 每批行情触发一次，是主要决策点。
type StrategyHooks interface {
	Hooks
	OnOpen(ctx *Context, evt string, payload map[string]any) (any, error)
	OnClose(ctx *Context, evt string, payload map[string]any) (any, error)
	OnQuot(ctx *Context, evt string, payload map[string]any) (any, error)
}

// Strategy exposes on_open/on_close/on_quot on top of the dispatch core.
type Strategy struct {
	*Core
}

func NewStrategy(hooks StrategyHooks) *Strategy {
	s := &Strategy{Core: newCore(RoleStrategy, hooks)}
	s.register(OpOnOpen, hooks.OnOpen)
	s.register(OpOnClose, hooks.OnClose)
	s.register(OpOnQuot, hooks.OnQuot)
	return s
}

// StrategyBase 为不关心的回调提供空实现，策略作者按需覆盖。
type StrategyBase struct {
	Base
}

func (StrategyBase) OnOpen(*Context, string, map[string]any) (any, error)  { return nil, nil }
func (StrategyBase) OnClose(*Context, string, map[string]any) (any, error) { return nil, nil }
func (StrategyBase) OnQuot(*Context, string, map[string]any) (any, error)  { return nil, nil }
