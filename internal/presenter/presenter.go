// Package presenter turns UI events into item store calls and redraw
// effects on a View.
package presenter

import (
	"fmt"

	"github.com/idilsaglam/tickbox/internal/event"
	"github.com/idilsaglam/tickbox/internal/model"
)

// View is what a UI layer offers the presenter.
type View interface {
	// InputText returns the current "new item" text.
	InputText() string
	// RenderList replaces the displayed list.
	RenderList(items []model.Item)
	// AppendItem adds one item at the end of the displayed list.
	AppendItem(item model.Item)
	// MarkCompleted strikes the given items through.
	MarkCompleted(ids []int)
	// RemoveItems drops the given items from the display.
	RemoveItems(ids []int)
}

// ItemStore is the part of store.Store the presenter drives.
type ItemStore interface {
	Items() []model.Item
	AddItem(draft model.Item) (model.Item, error)
	RemoveSelectedItems() error
	CompleteSelectedItems() error
	SelectItem(id int, selected bool) error
	SelectedIDs() []int
	FilterItems(phrase string) []model.Item
}

// Presenter wires one View to one ItemStore through a Dispatcher.
type Presenter struct {
	store  ItemStore
	view   View
	subs   []event.Subscription
	filter string
}

// New subscribes to every UI event on d and draws the full list.
func New(s ItemStore, v View, d event.Dispatcher) *Presenter {
	p := &Presenter{store: s, view: v}
	p.subs = []event.Subscription{
		d.Subscribe(event.AddRequested, func(event.Event) error { return p.AddItem() }),
		d.Subscribe(event.RemoveSelectedRequested, func(event.Event) error { return p.RemoveSelected() }),
		d.Subscribe(event.CompleteSelectedRequested, func(event.Event) error { return p.CompleteSelected() }),
		d.Subscribe(event.SearchChanged, func(e event.Event) error { p.Search(e.Text); return nil }),
		d.Subscribe(event.SelectionToggled, func(e event.Event) error { return p.Toggle(e.ID, e.Flag) }),
	}
	p.view.RenderList(p.store.Items())
	return p
}

// AddItem stores the view's input text as a new item and appends it.
func (p *Presenter) AddItem() error {
	it, err := p.store.AddItem(model.Item{Text: p.view.InputText()})
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	p.view.AppendItem(it)
	return nil
}

// RemoveSelected removes the selected items from the store, then the view.
func (p *Presenter) RemoveSelected() error {
	ids := p.store.SelectedIDs()
	if err := p.store.RemoveSelectedItems(); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	p.view.RemoveItems(ids)
	return nil
}

// CompleteSelected completes the selected items in the store, then the view.
func (p *Presenter) CompleteSelected() error {
	ids := p.store.SelectedIDs()
	if err := p.store.CompleteSelectedItems(); err != nil {
		return fmt.Errorf("complete: %w", err)
	}
	p.view.MarkCompleted(ids)
	return nil
}

// Search redraws the list with the items matching phrase.
func (p *Presenter) Search(phrase string) {
	p.filter = phrase
	p.view.RenderList(p.store.FilterItems(phrase))
}

// Toggle forwards a selection change to the store.
func (p *Presenter) Toggle(id int, flag bool) error {
	if err := p.store.SelectItem(id, flag); err != nil {
		return fmt.Errorf("select %d: %w", id, err)
	}
	return nil
}

// Filter returns the last search phrase.
func (p *Presenter) Filter() string { return p.filter }

// Dispose releases every subscription. Safe to call more than once.
func (p *Presenter) Dispose() {
	for _, s := range p.subs {
		s.Unsubscribe()
	}
	p.subs = nil
}
