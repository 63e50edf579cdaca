package ingestion

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/quake-predictor/internal/config"
	"github.com/mr1hm/quake-predictor/internal/dataset"
	"github.com/mr1hm/quake-predictor/internal/models"
	"github.com/mr1hm/quake-predictor/internal/observability"
	"github.com/mr1hm/quake-predictor/internal/worker"
)

type fetchFunc func(ctx context.Context, client *http.Client, url string) ([]models.Record, error)

type pollResult struct {
	origin  dataset.Origin
	records []models.Record
}

// Manager polls the public feeds and turns every successful poll into a new
// dataset snapshot.
type Manager struct {
	cfg     *config.Config
	store   *dataset.Store
	metrics *observability.Metrics
	clock   clockwork.Clock
	client  *http.Client
	pool    *worker.Pool[pollResult]
	wg      sync.WaitGroup
}

func NewManager(cfg *config.Config, store *dataset.Store, metrics *observability.Metrics, clock clockwork.Clock) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{
		cfg:     cfg,
		store:   store,
		metrics: metrics,
		clock:   clock,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (m *Manager) Start(ctx context.Context) {
	m.pool = worker.NewPool("ingestion", m.cfg.Worker.Count, m.cfg.Worker.BufferSize, m.process)
	m.pool.Start(ctx)

	if m.cfg.Sources.USGSEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx, dataset.OriginUSGS, m.cfg.Sources.USGSURL, m.cfg.Sources.USGSPollInterval, fetchUSGS)
	}

	if m.cfg.Sources.GDACSEnabled {
		m.wg.Add(1)
		go m.runPoller(ctx, dataset.OriginGDACS, m.cfg.Sources.GDACSURL, m.cfg.Sources.GDACSPollInterval, fetchGDACS)
	}
}

func (m *Manager) process(ctx context.Context, res pollResult) error {
	snap, err := m.store.Replace(res.origin, res.records)
	m.metrics.RecordLoad(string(res.origin), len(res.records), err)
	if err != nil {
		return err
	}

	slog.Info("dataset replaced", "origin", res.origin, "snapshot", snap.Label(), "count", snap.Len())
	return nil
}

func (m *Manager) runPoller(ctx context.Context, origin dataset.Origin, url string, interval time.Duration, fetch fetchFunc) {
	defer m.wg.Done()
	slog.Info("starting poller", "source", origin, "interval", interval)

	ticker := m.clock.NewTicker(interval)
	defer ticker.Stop()

	// Initial poll
	m.poll(ctx, origin, url, fetch)

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller shutting down", "source", origin)
			return
		case <-ticker.Chan():
			m.poll(ctx, origin, url, fetch)
		}
	}
}

func (m *Manager) poll(ctx context.Context, origin dataset.Origin, url string, fetch fetchFunc) {
	slog.Debug("polling", "source", origin)

	records, err := fetch(ctx, m.client, url)
	if err != nil {
		m.metrics.RecordLoad(string(origin), 0, err)
		slog.Error("poll failed", "source", origin, "error", err)
		return
	}

	if err := m.pool.Submit(ctx, pollResult{origin: origin, records: records}); err != nil {
		slog.Warn("dropping poll result", "source", origin, "error", err)
		return
	}

	slog.Debug("poll complete", "source", origin, "count", len(records))
}

func (m *Manager) Stop() {
	m.wg.Wait()
	if m.pool != nil {
		m.pool.Stop()
	}
	m.client.CloseIdleConnections()
	slog.Info("ingestion manager stopped")
}
