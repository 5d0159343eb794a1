package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/five82/sheetdash/internal/logging"
	"github.com/five82/sheetdash/internal/sheets"
	"github.com/five82/sheetdash/internal/state"
)

// Trigger says what started a refresh attempt.
type Trigger int

const (
	TriggerStartup Trigger = iota
	TriggerManual
	TriggerPoll
)

func (t Trigger) String() string {
	switch t {
	case TriggerManual:
		return "manual"
	case TriggerPoll:
		return "poll"
	default:
		return "startup"
	}
}

// Outcome is the result of a refresh attempt.
type Outcome int

const (
	OutcomeLive Outcome = iota
	OutcomeNoData
	OutcomeFailed
	// OutcomeStale means a newer attempt started first and this result was dropped.
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLive:
		return "live"
	case OutcomeNoData:
		return "no data"
	case OutcomeFailed:
		return "failed"
	default:
		return "stale"
	}
}

// Controller runs refresh attempts and searches against a Surface. The last
// search query is retained and applied to every table it renders.
type Controller struct {
	fetcher sheets.Fetcher
	store   *state.Store
	surface Surface
	log     *logrus.Entry
	now     func() time.Time

	// renderMu orders dataset swaps against filtered renders.
	renderMu sync.Mutex
	query    string
}

// NewController wires a fetcher, the retained dataset and a surface together.
func NewController(fetcher sheets.Fetcher, store *state.Store, surface Surface) *Controller {
	return &Controller{
		fetcher: fetcher,
		store:   store,
		surface: surface,
		log:     logging.NewLogger("dashboard"),
		now:     time.Now,
	}
}

// Store returns the retained dataset store.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Endpoint returns the configured endpoint URL.
func (c *Controller) Endpoint() string {
	return c.fetcher.Endpoint()
}

// Refresh fetches the dataset once and updates the surface. The loading
// overlay and the busy animation are always cleared before it returns,
// whatever the outcome.
func (c *Controller) Refresh(ctx context.Context, trigger Trigger) Outcome {
	gen := c.store.Begin()
	log := c.log.WithFields(logrus.Fields{
		"attempt": uuid.NewString(),
		"trigger": trigger.String(),
	})

	c.surface.SetStatus(StatusConnecting.Indicator())
	c.surface.SetError(false)
	c.surface.SetLoading(true)
	spinning := trigger == TriggerManual
	if spinning {
		c.surface.SetSpinning(true)
	}
	defer func() {
		c.surface.SetLoading(false)
		if spinning {
			c.surface.SetSpinning(false)
		}
	}()

	log.WithField("endpoint", c.fetcher.Endpoint()).Debug("refresh started")
	started := c.now()
	ds, err := c.fetch(ctx)
	elapsed := c.now().Sub(started)

	if err != nil {
		return c.fail(log, gen, err)
	}

	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	if len(ds) == 0 {
		if !c.store.SetDataset(gen, nil) {
			log.Debug("discarding stale empty result")
			return OutcomeStale
		}
		c.surface.SetEmpty(true)
		c.surface.SetStatus(StatusNoData.Indicator())
		log.WithField("elapsed", elapsed).Info("endpoint returned no data")
		return OutcomeNoData
	}

	if !c.store.SetDataset(gen, ds) {
		log.Debug("discarding stale result")
		return OutcomeStale
	}
	c.surface.SetEmpty(false)
	c.surface.RenderTable(c.view(ds))
	c.surface.SetStatus(StatusLive.Indicator())
	c.surface.SetLastUpdated(c.now())
	log.WithFields(logrus.Fields{
		"rows":    len(ds) - 1,
		"elapsed": elapsed,
	}).Info("dataset refreshed")
	return OutcomeLive
}

func (c *Controller) fail(log *logrus.Entry, gen uint64, err error) Outcome {
	if !c.store.RecordFailure(gen, err) {
		log.WithError(err).Debug("discarding stale failure")
		return OutcomeStale
	}
	c.surface.SetError(true)
	c.surface.SetStatus(StatusFailed.Indicator())

	kind := sheets.KindOf(err)
	entry := log.WithError(err).WithField("kind", kind.String())
	if kind == sheets.KindConfiguration {
		entry.Warn("api_url is not configured; set api_url in config.toml or SHEETDASH_API_URL to the deployed web app URL")
	} else {
		entry.Error("refresh failed")
	}
	return OutcomeFailed
}

func (c *Controller) fetch(ctx context.Context) (ds sheets.Dataset, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	return c.fetcher.FetchDataset(ctx)
}

// Filter re-renders the table with the rows matching query and keeps query
// for later refreshes. It renders nothing and returns false when there is no
// retained header plus data pair.
func (c *Controller) Filter(query string) bool {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	c.query = query
	headers, rows, ok := Match(c.store.Dataset(), query)
	if !ok {
		return false
	}
	c.surface.RenderTable(BuildTable(rows, headers))
	return true
}

// Query returns the retained search query.
func (c *Controller) Query() string {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()
	return c.query
}

// view builds the table for a freshly fetched dataset under the retained
// query. Callers hold renderMu.
func (c *Controller) view(ds sheets.Dataset) Table {
	headers, rows, ok := Match(ds, c.query)
	if !ok {
		return BuildTable(nil, ds.Headers())
	}
	return BuildTable(rows, headers)
}
