package engine

// RiskHooks 是风控插件的回调面。on_risk 返回零到多个信号，
// 用于否决或补充策略信号；调用之间不保留状态。
type RiskHooks interface {
	Hooks
	OnRisk(ctx *Context, evt string, payload map[string]any) (any, error)
}

// Risk exposes on_risk on top of the dispatch core.
type Risk struct {
	*Core
}

func NewRisk(hooks RiskHooks) *Risk {
	r := &Risk{Core: newCore(RoleRisk, hooks)}
	r.register(OpOnRisk, hooks.OnRisk)
	return r
}

// RiskBase 为不关心的回调提供空实现。
type RiskBase struct {
	Base
}

func (RiskBase) OnRisk(*Context, string, map[string]any) (any, error) { return nil, nil }
