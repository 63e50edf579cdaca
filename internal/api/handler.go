package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mr1hm/quake-predictor/internal/dataset"
	"github.com/mr1hm/quake-predictor/internal/observability"
	"github.com/mr1hm/quake-predictor/internal/predictor"
	"github.com/mr1hm/quake-predictor/internal/simulator"
)

type Predictor interface {
	Predict(ctx context.Context, lat, lng, depth float64) (*predictor.Prediction, error)
	Ready() error
}

type Options struct {
	SampleSize     int
	TableLimit     int
	UploadMaxBytes int64
	Location       *time.Location

	// Rand and Clock drive sample generation; nil uses the defaults.
	Rand  simulator.Source
	Clock clockwork.Clock
}

type Handler struct {
	store       *dataset.Store
	broadcaster *dataset.Broadcaster
	predictor   Predictor
	metrics     *observability.Metrics
	opts        Options
}

func NewHandler(store *dataset.Store, broadcaster *dataset.Broadcaster, predictor Predictor, metrics *observability.Metrics, opts Options) *Handler {
	if opts.SampleSize <= 0 {
		opts.SampleSize = dataset.DefaultSampleSize
	}
	if opts.TableLimit <= 0 {
		opts.TableLimit = dataset.DefaultTableLimit
	}
	if opts.UploadMaxBytes <= 0 {
		opts.UploadMaxBytes = 10 << 20
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Rand == nil {
		opts.Rand = simulator.Entropy
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	return &Handler{
		store:       store,
		broadcaster: broadcaster,
		predictor:   predictor,
		metrics:     metrics,
		opts:        opts,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	api.POST("/predict", h.predict)
	api.GET("/zones", h.zones)

	ds := api.Group("/dataset")
	ds.GET("", h.datasetInfo)
	ds.POST("/sample", h.loadSample)
	ds.POST("/upload", h.upload)
	ds.GET("/table", h.table)
	ds.GET("/histogram", h.histogram)
	ds.GET("/geo", h.geo)
	ds.GET("/stream", h.stream)

	r.GET("/health", h.health)
	r.GET("/readyz", h.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ready fails while predictions are disabled; dataset endpoints keep working.
func (h *Handler) ready(c *gin.Context) {
	if err := h.predictor.Ready(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *Handler) zones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"zones": simulator.SeismicZones})
}
