package engine

import (
	"qstrategy/trader"
)

// BrokerHooks 是券商插件的回调面。OnEntrust 接收一条委托指令并返回
// 是否受理；成交/撤单结果通过 ctx.Emit 进入出站缓冲，等宿主轮询。
type BrokerHooks interface {
	Hooks
	OnEntrust(ctx *Context, evt string, entrust *trader.Entrust) (bool, error)
}

// Broker exposes on_entrust/on_poll on top of the dispatch core.
type Broker struct {
	*Core
	buffer *EventBuffer
}

func NewBroker(hooks BrokerHooks) *Broker {
	b := &Broker{Core: newCore(RoleBroker, hooks), buffer: NewEventBuffer()}
	b.Core.emitFn = b.buffer.Emit
	b.register(OpOnEntrust, func(ctx *Context, evt string, payload map[string]any) (any, error) {
		ent, err := trader.DecodeEntrust(payload)
		if err != nil {
			return nil, err
		}
		ack, err := hooks.OnEntrust(ctx, evt, ent)
		if err != nil {
			return nil, err
		}
		ctx.Log.Debug("entrust handled", "event", evt, "entrust_id", ent.EntrustID, "ack", ack)
		return nil, nil
	})
	b.register(OpOnPoll, func(ctx *Context, _ string, _ map[string]any) (any, error) {
		events := b.buffer.Drain()
		if events == nil {
			return nil, nil
		}
		ctx.Log.Info("broker poll", "events", len(events))
		return events, nil
	})
	return b
}

// Emit buffers a broker-produced event until the next poll.
func (b *Broker) Emit(kind string, event any) {
	b.buffer.Emit(kind, event)
}

// BrokerBase 为不关心的回调提供空实现。
type BrokerBase struct {
	Base
}

func (BrokerBase) OnEntrust(*Context, string, *trader.Entrust) (bool, error) { return false, nil }
