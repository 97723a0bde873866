package emitter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitCallsListenersInRegistrationOrder(t *testing.T) {
	events := New()

	var calls []string
	events.On("item.create", func(data any) { calls = append(calls, "first") })
	events.On("item.create", func(data any) { calls = append(calls, "second") })

	events.Emit("item.create", nil)

	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEmitPassesPayload(t *testing.T) {
	events := New()

	var received any
	events.On("item.update", func(data any) { received = data })

	payload := map[string]int{"id": 7}
	events.Emit("item.update", payload)

	assert.Equal(t, payload, received)
}

func TestEmitUnknownEventIsNoop(t *testing.T) {
	events := New()

	called := false
	events.On("item.create", func(data any) { called = true })

	events.Emit("item.delete", nil)

	assert.False(t, called)
}

func TestConcurrentEmitAndSubscribe(t *testing.T) {
	events := New()

	var mu sync.Mutex
	count := 0
	events.On("tick", func(data any) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			events.Emit("tick", nil)
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			events.On("other", func(data any) {})
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
}
