package routecache

import (
	"context"

	"github.com/Domenick1991/searchbox/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the catalog as seen by one page. It is never mutated after load.
type Snapshot struct {
	Airports  []domain.Airport
	Countries []domain.Country
	Routes    []domain.Route
}

// CountryOf resolves the airport's country; nil when the id dangles.
func (s *Snapshot) CountryOf(a domain.Airport) *domain.Country {
	c, ok := GetCountryByID(s.Countries, a.CountryID)
	if !ok {
		return nil
	}
	return &c
}

// Pending is the barrier over the concurrent fetches of one page.
type Pending struct {
	done chan struct{}
	snap *Snapshot
	err  error
}

// Prefetch starts the airport, country and route fetches concurrently.
func (c *Client) Prefetch(ctx context.Context) *Pending {
	p := &Pending{done: make(chan struct{})}

	go func() {
		defer close(p.done)

		var snap Snapshot
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			snap.Airports, err = c.FetchAirports(gctx)
			return err
		})
		g.Go(func() (err error) {
			snap.Countries, err = c.FetchCountries(gctx)
			return err
		})
		g.Go(func() (err error) {
			snap.Routes, err = c.FetchRoutes(gctx)
			return err
		})

		if err := g.Wait(); err != nil {
			p.err = err
			return
		}
		p.snap = &snap
	}()

	return p
}

// Wait blocks until every fetch resolved or ctx is done.
func (p *Pending) Wait(ctx context.Context) (*Snapshot, error) {
	select {
	case <-p.done:
		return p.snap, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Load fetches a fresh snapshot and waits for it.
func (c *Client) Load(ctx context.Context) (*Snapshot, error) {
	return c.Prefetch(ctx).Wait(ctx)
}
