package selector

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Domenick1991/searchbox/internal/domain"
	"github.com/Domenick1991/searchbox/internal/logger"
	"github.com/Domenick1991/searchbox/internal/routecache"
)

type State int

const (
	// Unconstrained: no departure chosen, every arrival option is available.
	Unconstrained State = iota
	// Constrained: arrival options are limited to the departure's reachable set.
	Constrained
)

func (s State) String() string {
	switch s {
	case Unconstrained:
		return "unconstrained"
	case Constrained:
		return "constrained"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Loader resolves the catalog snapshot a page works on.
type Loader interface {
	Load(ctx context.Context) (*routecache.Snapshot, error)
}

// Controller keeps the arrival selector consistent with the departure one.
// It can only be built from resolved routes, so no filtering ever runs
// against a catalog that is still loading.
type Controller struct {
	form     *Form
	routes   []domain.Route
	state    State
	departID int64
}

func NewController(form *Form, routes []domain.Route) *Controller {
	return &Controller{form: form, routes: routes}
}

// Mount loads the catalog, fills both selectors, applies the URL query and
// replays the departure change. On a load error the form keeps its
// unpopulated, unconstrained state apart from the verbatim date.
func Mount(ctx context.Context, loader Loader, form *Form, query url.Values, log *logger.Logger) (*Controller, error) {
	q := ParseQuery(query)
	if q.DepartDate != "" {
		form.DepartDate = q.DepartDate
	}

	snap, err := loader.Load(ctx)
	if err != nil {
		log.Error(err, "load catalog for search box")
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	Populate(form, snap)
	c := NewController(form, snap.Routes)
	c.Apply(q)
	return c, nil
}

// Populate appends one option per airport to both selectors.
func Populate(form *Form, snap *routecache.Snapshot) {
	for _, a := range snap.Airports {
		opt := Option{Value: fmt.Sprint(a.ID), Label: a.Label(snap.CountryOf(a))}
		form.Departure.Options = append(form.Departure.Options, opt)
		form.Arrival.Options = append(form.Arrival.Options, opt)
	}
}

func (c *Controller) State() (State, int64) {
	return c.state, c.departID
}

func (c *Controller) Form() *Form {
	return c.form
}

// SelectDeparture assigns the departure value and handles the change.
func (c *Controller) SelectDeparture(value string) {
	c.form.Departure.SetValue(value)
	c.Sync()
}

// Sync is the departure change handler. Running it twice with the same
// departure leaves the form unchanged.
func (c *Controller) Sync() {
	value := c.form.Departure.Value
	if strings.TrimSpace(value) == "" {
		c.unconstrain()
		return
	}

	var reachable []int64
	id, ok := domain.ParseID(value)
	if ok {
		reachable = routecache.GetArrivalAirportsByDeparture(c.routes, id)
	}
	set := make(map[int64]struct{}, len(reachable))
	for _, r := range reachable {
		set[r] = struct{}{}
	}
	isReachable := func(v string) bool {
		n, ok := domain.ParseID(v)
		if !ok {
			return false
		}
		_, found := set[n]
		return found
	}

	arrival := c.form.Arrival
	for i := range arrival.Options {
		arrival.Options[i].setAvailable(isReachable(arrival.Options[i].Value))
	}
	if arrival.Value != "" && !isReachable(arrival.Value) {
		arrival.Value = ""
	}

	c.state = Constrained
	c.departID = id
}

func (c *Controller) unconstrain() {
	for i := range c.form.Arrival.Options {
		c.form.Arrival.Options[i].setAvailable(true)
	}
	c.state = Unconstrained
	c.departID = 0
}

// ApplyQuery pre-seeds the form from URL parameters.
func (c *Controller) ApplyQuery(values url.Values) {
	c.Apply(ParseQuery(values))
}

// Apply assigns departure, arrival and date as given, then replays the
// departure change once when a departure was supplied.
func (c *Controller) Apply(q Query) {
	if q.From != "" {
		c.form.Departure.SetValue(q.From)
	}
	if q.To != "" {
		c.form.Arrival.SetValue(q.To)
	}
	if q.DepartDate != "" {
		c.form.DepartDate = q.DepartDate
	}
	if q.From != "" {
		c.Sync()
	}
}
