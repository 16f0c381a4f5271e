package memory

import (
	"context"
	"sync"

	"github.com/alanyang/promptvault/internal/domain/event"
	porteventbus "github.com/alanyang/promptvault/internal/port/eventbus"
)

var _ porteventbus.EventBus = (*Bus)(nil)

// Bus is an in-process event bus. The library has exactly one logical
// writer, so a cross-process broker buys nothing — subscribers (the WS hub)
// live in the same process as the publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[event.Channel]map[*subscription]struct{}
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[event.Channel]map[*subscription]struct{}),
	}
}

// Publish delivers e synchronously to every subscriber of its channel.
// Handlers run on the publisher's goroutine; they must not block.
func (b *Bus) Publish(ctx context.Context, e event.Event) error {
	ch := event.ChannelFor(e.Type)

	b.mu.RLock()
	subs := make([]*subscription, 0, len(b.subs[ch]))
	for sub := range b.subs[ch] {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(ctx, e)
	}
	return nil
}

func (b *Bus) Subscribe(_ context.Context, ch event.Channel, handler porteventbus.Handler) (porteventbus.Subscription, error) {
	sub := &subscription{bus: b, ch: ch, handler: handler}

	b.mu.Lock()
	if b.subs[ch] == nil {
		b.subs[ch] = make(map[*subscription]struct{})
	}
	b.subs[ch][sub] = struct{}{}
	b.mu.Unlock()

	return sub, nil
}

type subscription struct {
	bus     *Bus
	ch      event.Channel
	handler porteventbus.Handler
}

func (s *subscription) Unsubscribe() {
	s.bus.mu.Lock()
	delete(s.bus.subs[s.ch], s)
	s.bus.mu.Unlock()
}
