package idle

// Bus is an EventSource for single-threaded hosts. It is not safe for
// concurrent use; hosts call it from their loop only.
type Bus struct {
	nextID   SubscriptionID
	handlers map[string]map[SubscriptionID]func()
	order    map[string][]SubscriptionID
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string]map[SubscriptionID]func()),
		order:    make(map[string][]SubscriptionID),
	}
}

// Subscribe implements EventSource.
func (b *Bus) Subscribe(event string, handler func()) SubscriptionID {
	b.nextID++
	id := b.nextID
	if b.handlers[event] == nil {
		b.handlers[event] = make(map[SubscriptionID]func())
	}
	b.handlers[event][id] = handler
	b.order[event] = append(b.order[event], id)
	return id
}

// Unsubscribe implements EventSource.
func (b *Bus) Unsubscribe(event string, id SubscriptionID) {
	handlers := b.handlers[event]
	if _, ok := handlers[id]; !ok {
		return
	}
	delete(handlers, id)

	ids := b.order[event]
	for i, existing := range ids {
		if existing == id {
			b.order[event] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(handlers) == 0 {
		delete(b.handlers, event)
		delete(b.order, event)
	}
}

// Publish calls every handler subscribed to event in subscription order and
// returns how many were called. A handler removed during delivery is skipped;
// one added during delivery is first called on the next Publish.
func (b *Bus) Publish(event string) int {
	ids := append([]SubscriptionID(nil), b.order[event]...)
	delivered := 0
	for _, id := range ids {
		handler, ok := b.handlers[event][id]
		if !ok {
			continue
		}
		handler()
		delivered++
	}
	return delivered
}

// Len returns the number of live subscriptions across all events.
func (b *Bus) Len() int {
	total := 0
	for _, handlers := range b.handlers {
		total += len(handlers)
	}
	return total
}
