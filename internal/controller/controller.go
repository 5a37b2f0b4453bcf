// Package controller implements the restaurant directory view model: it
// drives the listing fetch, applies filter and search commands, picks the
// display unit for each restaurant and reports which screen to show.
package controller

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/mmcdole/tiffin/internal/card"
	"github.com/mmcdole/tiffin/internal/domain"
	"github.com/mmcdole/tiffin/internal/filter"
	"github.com/mmcdole/tiffin/internal/listing"
)

// State is the screen the renderer should show
type State int

const (
	StateLoading State = iota
	StatePopulated
	StateOffline
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePopulated:
		return "populated"
	case StateOffline:
		return "offline"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Command is a user action against the listing
type Command interface {
	isCommand()
}

// TopRatedCommand keeps only restaurants above the rating threshold
type TopRatedCommand struct{}

// SearchCommand keeps restaurants whose name matches Query
type SearchCommand struct {
	Query string
}

func (TopRatedCommand) isCommand() {}
func (SearchCommand) isCommand()   {}

// Options configure a Controller. Zero values pick the defaults.
type Options struct {
	Threshold          *float64           // nil = filter.DefaultTopRatedThreshold; 0 keeps every rated restaurant
	Matcher            filter.NameMatcher // nil = filter.ByName
	Base               card.Unit          // nil = card.Plain
	Label              string             // "" = card.DefaultLabel
	RefetchOnReconnect bool
	Observer           Observer
	Logger             *slog.Logger
}

// FetchResult is the outcome of one listing fetch, tagged with the
// generation that started it.
type FetchResult struct {
	Generation  uint64
	Restaurants domain.Collection
	Err         error
}

// View is what one render pass needs
type View struct {
	State       State
	Restaurants domain.Collection // Displayed collection
	Total       int               // Size of the canonical collection
	SearchText  string
	TopRated    bool // Displayed collection comes from the top rated filter
	Err         error
}

// Controller owns the listing store and is driven by one loop; it is not
// safe for concurrent use. Only the function returned by StartFetch may run
// elsewhere.
type Controller struct {
	source  domain.ListingSource
	monitor domain.ConnectivityMonitor
	store   *listing.Store

	threshold          float64
	matcher            filter.NameMatcher
	base               card.Unit
	decorated          card.Unit
	label              string
	refetchOnReconnect bool
	observer           Observer
	logger             *slog.Logger

	populated bool
	failed    bool
	fetchErr  error
	query     string
	topRated  bool

	generation uint64
	cancel     context.CancelFunc
	stopped    bool

	wasOnline      bool
	refetchPending bool
	lastState      State
}

// New creates a controller in the Loading state with an empty store
func New(source domain.ListingSource, monitor domain.ConnectivityMonitor, opts Options) *Controller {
	threshold := filter.DefaultTopRatedThreshold
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}
	if opts.Matcher == nil {
		opts.Matcher = filter.ByName
	}
	if opts.Label == "" {
		opts.Label = card.DefaultLabel
	}
	if opts.Observer == nil {
		opts.Observer = NoOpObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Controller{
		source:             source,
		monitor:            monitor,
		store:              listing.NewStore(),
		threshold:          threshold,
		matcher:            opts.Matcher,
		label:              opts.Label,
		refetchOnReconnect: opts.RefetchOnReconnect,
		observer:           opts.Observer,
		logger:             opts.Logger,
		wasOnline:          true,
		lastState:          StateLoading,
	}
	c.SetBaseUnit(opts.Base)
	return c
}

// SetBaseUnit replaces the base display unit; the decorated unit is rebuilt from it.
func (c *Controller) SetBaseUnit(base card.Unit) {
	if base == nil {
		base = card.Plain
	}
	c.base = base
	c.decorated = card.WithNamedLabel(c.label, base)
}

// === Lifecycle ===

// OnStart fetches the listing and applies the result before returning
func (c *Controller) OnStart(ctx context.Context) error {
	res := c.StartFetch(ctx)()
	c.Apply(res)
	return res.Err
}

// StartFetch begins a new fetch generation and returns the function that
// performs the network call. That function touches only the source, so it
// may run on another goroutine; its result must come back through Apply.
// Any earlier in-flight fetch is cancelled and its result will be ignored.
func (c *Controller) StartFetch(parent context.Context) func() FetchResult {
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	c.failed = false
	c.fetchErr = nil

	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel

	gen := c.generation
	source := c.source
	c.logger.Debug("listing fetch started", "generation", gen)

	return func() FetchResult {
		restaurants, err := source.FetchListing(ctx)
		return FetchResult{Generation: gen, Restaurants: restaurants, Err: err}
	}
}

// Apply folds a fetch result into the controller. Results from a superseded
// generation, or arriving after OnStop, are dropped and Apply returns false.
func (c *Controller) Apply(res FetchResult) bool {
	if c.stopped || res.Generation != c.generation {
		c.logger.Debug("dropping stale fetch result", "generation", res.Generation, "current", c.generation, "stopped", c.stopped)
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if res.Err != nil {
		c.failed = true
		c.fetchErr = res.Err
		c.logger.Error("listing fetch failed", "error", res.Err)
		return true
	}

	if len(res.Restaurants) == 0 {
		// Nothing to show yet; keep the placeholder up
		c.logger.Warn("listing fetch returned no restaurants")
		return true
	}

	c.store.ReplaceCanonical(res.Restaurants)
	c.populated = true
	c.topRated = false
	if c.query != "" {
		// Text typed while loading applies to the listing it was waiting for
		c.store.ReplaceDisplayed(c.matcher(c.store.Canonical(), c.query))
	}
	c.logger.Info("listing loaded", "count", len(res.Restaurants))
	return true
}

// OnStop tears the controller down: the in-flight fetch is cancelled and
// any result still on its way is ignored.
func (c *Controller) OnStop() {
	c.stopped = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// === Commands ===

// OnCommand handles a user command. Each command starts from the canonical
// collection, replacing whatever filter was shown before. Commands issued
// before the listing has loaded only record the search text; a recorded
// search is applied once the listing arrives.
func (c *Controller) OnCommand(cmd Command) {
	switch cmd := cmd.(type) {
	case TopRatedCommand:
		if !c.populated {
			return
		}
		c.store.ReplaceDisplayed(filter.TopRated(c.store.Canonical(), c.threshold))
		c.topRated = true
		c.logger.Debug("top rated filter applied", "threshold", c.threshold, "shown", c.store.DisplayedLen())

	case SearchCommand:
		c.query = cmd.Query
		if !c.populated {
			return
		}
		c.store.ReplaceDisplayed(c.matcher(c.store.Canonical(), cmd.Query))
		c.topRated = false
		c.logger.Debug("search applied", "query", cmd.Query, "shown", c.store.DisplayedLen())
	}
}

// TriggerTopRatedFilter is the filter button
func (c *Controller) TriggerTopRatedFilter() {
	c.OnCommand(TopRatedCommand{})
}

// SetSearchQuery is called on every keystroke in the search box
func (c *Controller) SetSearchQuery(text string) {
	c.OnCommand(SearchCommand{Query: text})
}

// ShowAll resets the displayed collection to the full listing and clears the search text
func (c *Controller) ShowAll() {
	c.query = ""
	c.topRated = false
	if c.populated {
		c.store.ReplaceDisplayed(c.store.Canonical())
	}
}

// === Queries ===

// State reads connectivity once and reports the current screen.
// Offline wins over every other state.
func (c *Controller) State() State {
	return c.state(c.monitor.Online())
}

func (c *Controller) state(online bool) State {
	var s State
	switch {
	case !online:
		s = StateOffline
	case c.failed:
		s = StateFailed
	case c.populated:
		s = StatePopulated
	default:
		s = StateLoading
	}

	if s != c.lastState {
		c.observer.OnStateChange(c.lastState, s)
		c.lastState = s
	}
	return s
}

// Render is one render pass: it samples connectivity once, tracks
// reconnects, and returns everything the renderer needs.
func (c *Controller) Render() View {
	online := c.monitor.Online()
	if online && !c.wasOnline {
		c.onReconnect()
	}
	c.wasOnline = online

	v := View{
		State:      c.state(online),
		Total:      c.store.CanonicalLen(),
		SearchText: c.query,
		TopRated:   c.topRated,
		Err:        c.fetchErr,
	}
	if v.State == StatePopulated {
		v.Restaurants = c.store.Displayed()
	}

	c.observer.OnRender(v)
	return v
}

func (c *Controller) onReconnect() {
	c.logger.Info("connectivity restored", "populated", c.populated, "refetch", c.refetchOnReconnect)
	if c.refetchOnReconnect && !c.populated && !c.stopped {
		c.refetchPending = true
	}
}

// NeedsRefetch reports, once, that a reconnect should trigger a new fetch.
// Always false unless RefetchOnReconnect is enabled.
func (c *Controller) NeedsRefetch() bool {
	pending := c.refetchPending
	c.refetchPending = false
	return pending
}

// Canonical returns a copy of the full fetched listing
func (c *Controller) Canonical() domain.Collection { return c.store.Canonical() }

// Displayed returns a copy of the collection currently shown
func (c *Controller) Displayed() domain.Collection { return c.store.Displayed() }

// SearchText returns the last search query entered
func (c *Controller) SearchText() string { return c.query }

// Threshold returns the top rated threshold in use
func (c *Controller) Threshold() float64 { return c.threshold }

// UnitFor picks the display unit for a restaurant: decorated for vegetarian
// restaurants, the plain base unit otherwise.
func (c *Controller) UnitFor(r domain.Restaurant) card.Unit {
	if r.IsVeg {
		return c.decorated
	}
	return c.base
}

// NavPath is the navigation target for a restaurant
func NavPath(id string) string {
	return "/restaurants/" + url.PathEscape(id)
}
