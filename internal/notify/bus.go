package notify

// Handler reacts to a published event. payload is one of the *Payload
// types in event.go, or nil for events that carry no data.
type Handler func(payload any) Result

type subscription struct {
	id      uint64
	handler Handler
	active  bool
}

// Subscription is an opaque handle returned by Subscribe, used to
// Unsubscribe later.
type Subscription struct {
	name Name
	id   uint64
}

// Bus is the document's notification substrate.
type Bus struct {
	subs   map[Name][]*subscription
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Name][]*subscription)}
}

// Subscribe registers handler for name, to be called in subscription order
// on every future Publish(name, ...).
func (b *Bus) Subscribe(name Name, handler Handler) Subscription {
	b.nextID++
	sub := &subscription{id: b.nextID, handler: handler, active: true}
	b.subs[name] = append(b.subs[name], sub)
	return Subscription{name: name, id: b.nextID}
}

// Unsubscribe removes a previously-registered handler. It is safe to call
// from within a handler currently being delivered by Publish.
func (b *Bus) Unsubscribe(sub Subscription) {
	for _, s := range b.subs[sub.name] {
		if s.id == sub.id {
			s.active = false
			return
		}
	}
}

// Publish calls every active handler registered for name, in subscription
// order, and returns each one's Result. The slot list is re-read by index
// on every iteration (not snapshotted), so a handler that subscribes or
// unsubscribes — including unsubscribing itself — mid-delivery is safely
// tolerated: later subscribers still run, and a handler that removes
// itself is simply skipped by future calls.
func (b *Bus) Publish(name Name, payload any) []Result {
	var results []Result
	for i := 0; i < len(b.subs[name]); i++ {
		sub := b.subs[name][i]
		if !sub.active {
			continue
		}
		results = append(results, sub.handler(payload))
	}
	b.compact(name)
	return results
}

// compact drops inactive subscriptions once delivery has finished, keeping
// the per-event slice from growing without bound across a long session.
func (b *Bus) compact(name Name) {
	subs := b.subs[name]
	live := subs[:0]
	for _, s := range subs {
		if s.active {
			live = append(live, s)
		}
	}
	b.subs[name] = live
}

// HasSubscribers reports whether any handler is currently registered for
// name.
func (b *Bus) HasSubscribers(name Name) bool {
	for _, s := range b.subs[name] {
		if s.active {
			return true
		}
	}
	return false
}
