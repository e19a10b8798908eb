package dom

import "golang.org/x/net/html"

// EventType names the events an element can dispatch
type EventType string

const (
	EventClick EventType = "click"
	EventInput EventType = "input"
)

// Event is passed to listeners when an element dispatches
type Event struct {
	Type   EventType
	Target *Handle
	Value  string // current value for input events
}

// ListenOption configures a subscription
type ListenOption func(*Subscription)

// Once removes the subscription right before its first invocation
func Once() ListenOption {
	return func(s *Subscription) {
		s.once = true
	}
}

// Subscription is the token returned when a listener is registered. Cancelling it
// removes the listener; a cancelled listener is never invoked again, even if the
// event that would have reached it is already being dispatched.
type Subscription struct {
	reg    *registry
	node   *html.Node
	event  EventType
	fn     func(Event)
	once   bool
	active bool
}

// Cancel removes the listener. Cancelling twice, or cancelling a once-listener
// that already fired, does nothing.
func (s *Subscription) Cancel() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	s.reg.remove(s)
}

// Active reports whether the listener is still registered
func (s *Subscription) Active() bool {
	return s != nil && s.active
}

type registry struct {
	byNode map[*html.Node]map[EventType][]*Subscription
}

func newRegistry() *registry {
	return &registry{byNode: make(map[*html.Node]map[EventType][]*Subscription)}
}

func (r *registry) add(n *html.Node, event EventType, fn func(Event), opts []ListenOption) *Subscription {
	s := &Subscription{reg: r, node: n, event: event, fn: fn, active: true}
	for _, opt := range opts {
		opt(s)
	}

	events, ok := r.byNode[n]
	if !ok {
		events = make(map[EventType][]*Subscription)
		r.byNode[n] = events
	}
	events[event] = append(events[event], s)
	return s
}

func (r *registry) remove(s *Subscription) {
	events, ok := r.byNode[s.node]
	if !ok {
		return
	}
	subs := events[s.event]
	for i, candidate := range subs {
		if candidate == s {
			events[s.event] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(events[s.event]) == 0 {
		delete(events, s.event)
	}
	if len(events) == 0 {
		delete(r.byNode, s.node)
	}
}

// dispatch invokes the listeners registered at dispatch time, in registration
// order, skipping any that were cancelled by an earlier listener.
func (r *registry) dispatch(n *html.Node, ev Event) int {
	events, ok := r.byNode[n]
	if !ok {
		return 0
	}
	subs := append([]*Subscription(nil), events[ev.Type]...)

	fired := 0
	for _, s := range subs {
		if !s.active {
			continue
		}
		if s.once {
			s.Cancel()
		}
		s.fn(ev)
		fired++
	}
	return fired
}

// count returns the number of live listeners for an event on a node
func (r *registry) count(n *html.Node, event EventType) int {
	return len(r.byNode[n][event])
}

// forget drops every listener registered inside a detached subtree
func (r *registry) forget(n *html.Node) {
	if events, ok := r.byNode[n]; ok {
		for _, subs := range events {
			for _, s := range subs {
				s.active = false
			}
		}
		delete(r.byNode, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.forget(c)
	}
}
