package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBufferKindRouting(t *testing.T) {
	b := NewEventBuffer()
	b.Emit("", "ignored")
	b.Emit("Entrust", map[string]any{"entrust_id": "e-1"}) // 首字母匹配，大小写不敏感
	b.Emit(EvtPosSync, "snapshot")
	b.Emit(EvtFundSync, "funds")

	events := b.Drain()
	assert.Len(t, events, 3)
	assert.Nil(t, b.Drain())
}

func TestEventBufferDrainEmpty(t *testing.T) {
	b := NewEventBuffer()
	assert.Nil(t, b.Drain())
}

// 并发 Emit/Drain 下事件不丢不重。
func TestEventBufferConcurrency(t *testing.T) {
	b := NewEventBuffer()
	const producers = 4
	const perProducer = 200

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				b.Emit(EvtEntrust, fmt.Sprintf("p%d-%d", p, i))
			}
		}(p)
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	collected := 0
loop:
	for {
		select {
		case <-done:
			break loop
		default:
			collected += len(b.Drain())
		}
	}
	collected += len(b.Drain())

	assert.Equal(t, producers*perProducer, collected)
	assert.Nil(t, b.Drain())
}
