package console

import (
	"errors"

	"reservequeue/internal/catalog"
	"reservequeue/internal/reservation"
)

var ErrNotEditing = errors.New("no reservation is being edited")

// Planner is the reservation view-model. It keeps the current selection and
// the edit target and hands every change to the Store.
type Planner struct {
	catalog *catalog.Catalog
	store   *reservation.Store

	shop    catalog.Shop
	date    string
	editing string
}

func NewPlanner(c *catalog.Catalog, s *reservation.Store) *Planner {
	return &Planner{catalog: c, store: s}
}

func (p *Planner) Shops() []catalog.Shop {
	return p.catalog.All()
}

func (p *Planner) Reservations() []reservation.Reservation {
	return p.store.List()
}

// Usage reports how many reservations are held out of the limit.
func (p *Planner) Usage() (int, int) {
	return p.store.Len(), p.store.Capacity()
}

func (p *Planner) SelectShop(id int) (catalog.Shop, error) {
	shop, err := p.catalog.Lookup(id)
	if err != nil {
		return catalog.Shop{}, err
	}
	p.shop = shop
	return shop, nil
}

func (p *Planner) SelectDate(date string) {
	p.date = date
}

func (p *Planner) Selection() (catalog.Shop, string) {
	return p.shop, p.date
}

// Submit books the selected shop on the selected date. The selection is
// cleared only on success.
func (p *Planner) Submit() (reservation.Reservation, error) {
	r, err := p.store.Add(p.shop, p.date)
	if err != nil {
		return reservation.Reservation{}, err
	}
	p.reset()
	return r, nil
}

// BeginEdit loads a reservation into the selection.
func (p *Planner) BeginEdit(id string) (reservation.Reservation, error) {
	r, err := p.store.Get(id)
	if err != nil {
		return reservation.Reservation{}, err
	}
	p.editing = r.ID
	p.shop = r.Shop
	p.date = r.Date
	return r, nil
}

// Editing returns the reservation under edit, if any.
func (p *Planner) Editing() (reservation.Reservation, bool) {
	if p.editing == "" {
		return reservation.Reservation{}, false
	}
	r, err := p.store.Get(p.editing)
	if err != nil {
		return reservation.Reservation{}, false
	}
	return r, true
}

func (p *Planner) SubmitEdit() (reservation.Reservation, error) {
	if p.editing == "" {
		return reservation.Reservation{}, ErrNotEditing
	}
	r, err := p.store.Update(p.editing, p.shop, p.date)
	if err != nil {
		return reservation.Reservation{}, err
	}
	p.reset()
	return r, nil
}

func (p *Planner) CancelEdit() {
	p.reset()
}

// Cancel removes a reservation. Asking the user first is up to the caller.
func (p *Planner) Cancel(id string) error {
	if err := p.store.Remove(id); err != nil {
		return err
	}
	if p.editing == id {
		p.reset()
	}
	return nil
}

func (p *Planner) View(id string) (reservation.Reservation, error) {
	return p.store.Get(id)
}

func (p *Planner) reset() {
	p.shop = catalog.Shop{}
	p.date = ""
	p.editing = ""
}
