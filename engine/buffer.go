package engine

import (
	"strings"
	"sync"
)

// EventBuffer 暂存 broker 产生的事件，等待宿主下一次 on_poll。
// Emit 与 Drain 可能来自不同 goroutine；Drain 的构建与清空在同一
// 临界区内完成，与 Emit 竞争时事件既不会丢失也不会重复。
type EventBuffer struct {
	mu       sync.Mutex
	entrusts []map[string]any
	position any
	fund     any
}

func NewEventBuffer() *EventBuffer {
	return &EventBuffer{}
}

// Emit 按 kind 首字母分类（大小写不敏感）：e* 追加一条委托事件，
// p* 整体替换持仓快照，f* 整体替换资金快照。空 kind 忽略。
func (b *EventBuffer) Emit(kind string, event any) {
	if kind == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	switch strings.ToLower(kind[:1]) {
	case "e":
		b.entrusts = append(b.entrusts, map[string]any{EvtEntrust: event})
	case "p":
		b.position = event
	case "f":
		b.fund = event
	}
}

// Drain 按发生顺序返回暂存事件并清空全部槽位；无事件时返回 nil。
func (b *EventBuffer) Drain() []any {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entrusts) == 0 && b.position == nil && b.fund == nil {
		return nil
	}
	events := make([]any, 0, len(b.entrusts)+2)
	for _, wrapped := range b.entrusts {
		events = append(events, wrapped)
	}
	if b.position != nil {
		events = append(events, map[string]any{"position": b.position})
	}
	if b.fund != nil {
		events = append(events, map[string]any{EvtFundSync: b.fund})
	}
	b.entrusts = nil
	b.position = nil
	b.fund = nil
	return events
}
