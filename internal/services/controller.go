package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/skyline/internal/metrics"
	"github.com/bobby-s-dev/skyline/internal/models"
	"github.com/bobby-s-dev/skyline/internal/view"
)

// User-facing copy.
const (
	MsgCityNotFound      = "City not found. Try another name."
	MsgLoadFailed        = "Could not load weather. Check your connection and try again."
	MsgDefaultNotFound   = "Could not load default weather. Search for a city."
	MsgDefaultLoadFailed = "Could not load weather. Search for a city to get started."
	placeholderTemplate  = "e.g. %s, New York, Tokyo"
	DefaultCity          = "London"
)

type Origin string

const (
	OriginSearch    Origin = "search"
	OriginBootstrap Origin = "bootstrap"
	OriginRefresh   Origin = "refresh"
)

type Resolver interface {
	Resolve(ctx context.Context, query string) (*models.Location, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64, timezone string) (*models.WeatherSnapshot, error)
}

type Renderer interface {
	RenderCurrent(slots view.Slots, snapshot *models.WeatherSnapshot, locationName, countryCode string)
	RenderForecast(slots view.Slots, snapshot *models.WeatherSnapshot)
}

type Display interface {
	SetState(state models.DisplayState)
	State() models.DisplayState
	Apply(frame *view.Frame, state models.DisplayState)
	ShowError(message string)
	SetPlaceholder(text string)
}

// Outcome describes one pipeline invocation.
type Outcome struct {
	SearchID   string              `json:"search_id,omitempty"`
	Generation uint64              `json:"generation"`
	Origin     Origin              `json:"origin"`
	Query      string              `json:"query"`
	State      models.DisplayState `json:"state"`
	Message    string              `json:"message,omitempty"`
	// Applied is false when a newer invocation superseded this one.
	Applied bool `json:"applied"`
	// Skipped is set for empty queries and for refreshes that found another
	// pipeline in flight. Neither touches the display.
	Skipped bool  `json:"skipped,omitempty"`
	Err     error `json:"-"`
}

type copyText struct {
	notFound string
	failed   string
}

var (
	searchCopy    = copyText{notFound: MsgCityNotFound, failed: MsgLoadFailed}
	bootstrapCopy = copyText{notFound: MsgDefaultNotFound, failed: MsgDefaultLoadFailed}
)

type ControllerDeps struct {
	Resolver Resolver
	Fetcher  Fetcher
	Renderer Renderer
	Display  Display
	Metrics  *metrics.Collector
	Logger   *zap.Logger
	// DefaultCity is used by Bootstrap and by Refresh before any search succeeded.
	DefaultCity string
}

// Controller runs the resolve -> fetch -> render pipeline and owns the display
// state machine. Invocations may overlap; each one takes a generation number
// and only the newest generation is allowed to write to the display. A
// refresh never starts while a search or bootstrap is in flight.
type Controller struct {
	resolver    Resolver
	fetcher     Fetcher
	renderer    Renderer
	display     Display
	metrics     *metrics.Collector
	logger      *zap.Logger
	defaultCity string

	mu         sync.Mutex
	generation uint64
	inflight   int
	lastQuery  string
}

func NewController(deps ControllerDeps) (*Controller, error) {
	if deps.Resolver == nil || deps.Fetcher == nil || deps.Renderer == nil || deps.Display == nil {
		return nil, fmt.Errorf("controller requires resolver, fetcher, renderer and display")
	}
	if deps.Metrics == nil {
		return nil, fmt.Errorf("controller requires a metrics collector")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	city := strings.TrimSpace(deps.DefaultCity)
	if city == "" {
		city = DefaultCity
	}

	return &Controller{
		resolver:    deps.Resolver,
		fetcher:     deps.Fetcher,
		renderer:    deps.Renderer,
		display:     deps.Display,
		metrics:     deps.Metrics,
		logger:      logger,
		defaultCity: city,
	}, nil
}

// Search runs the pipeline for a user query. A blank query is a no-op.
func (c *Controller) Search(ctx context.Context, query string) Outcome {
	// Clone: the caller's buffer (e.g. a fiber query value) may be reused.
	q := strings.Clone(strings.TrimSpace(query))
	if q == "" {
		c.metrics.RecordSearch(string(OriginSearch), metrics.OutcomeSkipped)
		return Outcome{Origin: OriginSearch, State: c.display.State(), Skipped: true}
	}
	return c.run(ctx, OriginSearch, q, searchCopy)
}

// Bootstrap shows the search placeholder and loads the default city.
func (c *Controller) Bootstrap(ctx context.Context) Outcome {
	c.display.SetPlaceholder(fmt.Sprintf(placeholderTemplate, c.defaultCity))
	return c.run(ctx, OriginBootstrap, c.defaultCity, bootstrapCopy)
}

// Refresh re-runs the pipeline for the last rendered query. It is skipped
// while any other pipeline is in flight.
func (c *Controller) Refresh(ctx context.Context) Outcome {
	c.mu.Lock()
	q := c.lastQuery
	c.mu.Unlock()
	if q == "" {
		q = c.defaultCity
	}
	return c.run(ctx, OriginRefresh, q, searchCopy)
}

// LastQuery returns the query of the last applied successful render.
func (c *Controller) LastQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastQuery
}

func (c *Controller) run(ctx context.Context, origin Origin, query string, text copyText) Outcome {
	out := Outcome{
		SearchID: uuid.NewString(),
		Origin:   origin,
		Query:    query,
	}
	gen, ok := c.begin(origin)
	if !ok {
		c.metrics.RecordSearch(string(origin), metrics.OutcomeSkipped)
		c.logger.Debug("Refresh skipped, pipeline in flight", zap.String("query", query))
		return Outcome{Origin: origin, Query: query, State: c.display.State(), Skipped: true}
	}
	defer c.finish()
	out.Generation = gen

	log := c.logger.With(
		zap.String("search_id", out.SearchID),
		zap.String("origin", string(origin)),
		zap.String("query", query),
		zap.Uint64("generation", out.Generation))
	log.Debug("Weather pipeline started")

	location, err := c.resolver.Resolve(ctx, query)
	if err != nil {
		if errors.Is(err, models.ErrLocationNotFound) {
			return c.fail(log, out, text.notFound, metrics.OutcomeNotFound, err)
		}
		return c.fail(log, out, text.failed, metrics.OutcomeFailed, err)
	}

	snapshot, err := c.fetcher.Fetch(ctx, location.Latitude, location.Longitude, location.Timezone)
	if err != nil {
		return c.fail(log, out, text.failed, metrics.OutcomeFailed, err)
	}

	out.State = models.StateReady
	out.Applied = c.commit(out.Generation, func() {
		frame := view.NewFrame()
		c.renderer.RenderCurrent(frame, snapshot, location.Name, location.CountryCode)
		c.renderer.RenderForecast(frame, snapshot)
		c.display.Apply(frame, models.StateReady)
		c.lastQuery = query
	})
	if !out.Applied {
		return c.discard(log, out)
	}

	c.metrics.RecordSearch(string(origin), metrics.OutcomeReady)
	log.Info("Weather rendered",
		zap.String("location", location.Name),
		zap.String("country", location.CountryCode))
	return out
}

// begin stamps a new generation and enters the loading state. It refuses a
// refresh while another pipeline is in flight.
func (c *Controller) begin(origin Origin) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if origin == OriginRefresh && c.inflight > 0 {
		return 0, false
	}
	c.inflight++
	c.generation++
	c.display.SetState(models.StateLoading)
	return c.generation, true
}

func (c *Controller) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
}

// commit runs apply only if gen is still the newest generation.
func (c *Controller) commit(gen uint64, apply func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	apply()
	return true
}

func (c *Controller) fail(log *zap.Logger, out Outcome, message, outcome string, err error) Outcome {
	out.State = models.StateError
	out.Message = message
	out.Err = err
	out.Applied = c.commit(out.Generation, func() {
		c.display.ShowError(message)
	})
	if !out.Applied {
		return c.discard(log, out)
	}

	c.metrics.RecordSearch(string(out.Origin), outcome)
	if outcome == metrics.OutcomeNotFound {
		log.Info("Location not found")
	} else {
		log.Warn("Weather pipeline failed", zap.Error(err))
	}
	return out
}

func (c *Controller) discard(log *zap.Logger, out Outcome) Outcome {
	c.metrics.RecordSearch(string(out.Origin), metrics.OutcomeStale)
	log.Debug("Discarded result of superseded pipeline", zap.String("state", out.State.String()))
	return out
}
