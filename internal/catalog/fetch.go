package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reservequeue/internal/entities"

	"github.com/sirupsen/logrus"
)

// Source loads the shop list. Implementations may block.
type Source interface {
	Shops(ctx context.Context) ([]Shop, error)
}

// StaticSource serves the built-in shops after an artificial delay that
// stands in for network latency.
type StaticSource struct {
	Delay time.Duration
}

func (s StaticSource) Shops(ctx context.Context) ([]Shop, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return BuiltinShops(), nil
}

// HospitalLister is the part of the API gateway a RemoteSource needs.
type HospitalLister interface {
	ListHospitals(ctx context.Context) ([]entities.Hospital, error)
}

// RemoteSource loads shops from the hospitals endpoint.
type RemoteSource struct {
	API HospitalLister
}

func (s RemoteSource) Shops(ctx context.Context) ([]Shop, error) {
	hospitals, err := s.API.ListHospitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}
	shops := make([]Shop, 0, len(hospitals))
	for _, h := range hospitals {
		shops = append(shops, FromHospital(h))
	}
	return shops, nil
}

func FromHospital(h entities.Hospital) Shop {
	return Shop{ID: h.ID, Name: h.Name, Address: h.Address, Telephone: h.Telephone, Hours: h.Hours}
}

func ToHospital(s Shop) entities.Hospital {
	return entities.Hospital{ID: s.ID, Name: s.Name, Address: s.Address, Telephone: s.Telephone, Hours: s.Hours}
}

// Future is the pending result of a one-shot Fetch.
type Future struct {
	done chan struct{}
	once sync.Once

	catalog *Catalog
	err     error
}

// Fetch starts loading src in the background and returns immediately.
func Fetch(ctx context.Context, src Source) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		start := time.Now()
		shops, err := src.Shops(ctx)
		if err != nil {
			f.resolve(nil, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"shops":   len(shops),
			"elapsed": time.Since(start).String(),
		}).Debug("catalog loaded")
		f.resolve(New(shops), nil)
	}()
	return f
}

// Ready wraps an already loaded catalog, so callers can treat the
// synchronous and asynchronous cases alike.
func Ready(c *Catalog) *Future {
	f := &Future{done: make(chan struct{})}
	f.resolve(c, nil)
	return f
}

func (f *Future) resolve(c *Catalog, err error) {
	f.once.Do(func() {
		f.catalog, f.err = c, err
		close(f.done)
	})
}

func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the fetch finishes or ctx is done. Giving up on ctx does
// not cancel the fetch itself.
func (f *Future) Wait(ctx context.Context) (*Catalog, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-f.done:
		return f.catalog, f.err
	}
}
