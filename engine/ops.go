package engine

// 角色标签，决定日志子目录与注册的操作集。
const (
	RoleStrategy = "strategy"
	RoleBroker   = "broker"
	RoleRisk     = "risk"
)

// 宿主可派发的操作名。
const (
	OpInit      = "init"
	OpDestroy   = "destroy"
	OpOnOpen    = "on_open"
	OpOnClose   = "on_close"
	OpOnQuot    = "on_quot"
	OpOnRisk    = "on_risk"
	OpOnEntrust = "on_entrust"
	OpOnPoll    = "on_poll"
)

// broker 产生的事件类型，也是 Emit 的 kind 取值。
const (
	EvtEntrust  = "entrust"
	EvtFundSync = "fund_sync"
	EvtPosSync  = "pos_sync"
)
