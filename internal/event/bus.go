// Package event carries UI-originated events to their subscribers.
// Dispatch is synchronous: Publish returns after every handler ran.
package event

// Name identifies a kind of UI event.
type Name string

const (
	AddRequested              Name = "add-requested"
	RemoveSelectedRequested   Name = "remove-selected-requested"
	CompleteSelectedRequested Name = "complete-selected-requested"
	SearchChanged             Name = "search-changed"
	SelectionToggled          Name = "selection-toggled"
)

// Event is one UI notification. Text is set for SearchChanged; ID and Flag
// for SelectionToggled.
type Event struct {
	Name Name
	Text string
	ID   int
	Flag bool
}

// Search builds a SearchChanged event.
func Search(text string) Event { return Event{Name: SearchChanged, Text: text} }

// Toggle builds a SelectionToggled event.
func Toggle(id int, flag bool) Event { return Event{Name: SelectionToggled, ID: id, Flag: flag} }

// Handler reacts to one event. A non-nil error aborts the dispatch.
type Handler func(Event) error

// Subscription releases a handler registration.
type Subscription interface {
	Unsubscribe()
}

// Dispatcher is the subscription side of a Bus.
type Dispatcher interface {
	Subscribe(name Name, h Handler) Subscription
}

// Bus is a synchronous, single-threaded event dispatcher.
type Bus struct {
	nextID   int
	handlers map[Name][]registration
}

type registration struct {
	id int
	h  Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: map[Name][]registration{}}
}

// Subscribe registers h for events called name.
func (b *Bus) Subscribe(name Name, h Handler) Subscription {
	b.nextID++
	b.handlers[name] = append(b.handlers[name], registration{id: b.nextID, h: h})
	return &subscription{bus: b, name: name, id: b.nextID}
}

// Publish delivers e to its handlers in subscription order and returns the
// first error. Handlers after a failing one do not run.
func (b *Bus) Publish(e Event) error {
	regs := append([]registration(nil), b.handlers[e.Name]...)
	for _, r := range regs {
		if err := r.h(e); err != nil {
			return err
		}
	}
	return nil
}

// Len reports how many handlers are subscribed to name.
func (b *Bus) Len(name Name) int { return len(b.handlers[name]) }

func (b *Bus) remove(name Name, id int) {
	regs := b.handlers[name]
	for i, r := range regs {
		if r.id == id {
			b.handlers[name] = append(regs[:i], regs[i+1:]...)
			break
		}
	}
	if len(b.handlers[name]) == 0 {
		delete(b.handlers, name)
	}
}

type subscription struct {
	bus  *Bus
	name Name
	id   int
	done bool
}

func (s *subscription) Unsubscribe() {
	if s.done {
		return
	}
	s.done = true
	s.bus.remove(s.name, s.id)
}
