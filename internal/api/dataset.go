package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/quake-predictor/internal/dataset"
	"github.com/mr1hm/quake-predictor/internal/ingestion"
	"github.com/mr1hm/quake-predictor/internal/models"
)

const (
	maxSampleSize = 10000
	maxTableLimit = 500
)

func (h *Handler) loadSample(c *gin.Context) {
	count := h.opts.SampleSize
	if s := c.Query("count"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxSampleSize {
			writeError(c, &badRequest{message: "count must be between 1 and " + strconv.Itoa(maxSampleSize)})
			return
		}
		count = n
	}

	records := dataset.GenerateSample(h.opts.Rand, h.opts.Clock, count)
	h.replace(c, dataset.OriginSample, records)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.UploadMaxBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		writeError(c, &badRequest{message: "a file is required", err: err})
		return
	}
	defer file.Close()

	records, err := ingestion.Decode(header.Filename, file)
	if err != nil {
		h.metrics.RecordLoad(string(dataset.OriginUpload), 0, err)
		slog.Warn("upload rejected", "file", header.Filename, "error", err)
		if !errors.Is(err, ingestion.ErrEmptyFile) {
			err = &badRequest{message: "Error parsing file", err: err}
		}
		writeError(c, err)
		return
	}

	h.replace(c, dataset.OriginUpload, records)
}

func (h *Handler) replace(c *gin.Context, origin dataset.Origin, records []models.Record) {
	snap, err := h.store.Replace(origin, records)
	h.metrics.RecordLoad(string(origin), len(records), err)
	if err != nil {
		writeError(c, err)
		return
	}

	slog.Info("dataset replaced", "origin", origin, "snapshot", snap.Label(), "count", snap.Len())
	c.JSON(http.StatusCreated, snap.Info())
}

func (h *Handler) datasetInfo(c *gin.Context) {
	snap, err := h.store.Current()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap.Info())
}

func (h *Handler) table(c *gin.Context) {
	snap, err := h.store.Current()
	if err != nil {
		writeError(c, err)
		return
	}

	limit := h.opts.TableLimit
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= maxTableLimit {
			limit = n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot": snap.Label(),
		"total":    snap.Len(),
		"rows":     dataset.TableRows(snap.Records(), limit, h.opts.Location),
	})
}

func (h *Handler) histogram(c *gin.Context) {
	snap, err := h.store.Current()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshot": snap.Label(),
		"bin_size": dataset.BinSize,
		"bins":     dataset.Histogram(snap.Records()),
	})
}

func (h *Handler) geo(c *gin.Context) {
	snap, err := h.store.Current()
	if err != nil {
		writeError(c, err)
		return
	}

	series := dataset.BuildGeoSeries(snap.Records())
	if c.Query("format") == "geojson" {
		c.Header("Content-Type", "application/geo+json")
		c.JSON(http.StatusOK, toGeoJSON(series))
		return
	}
	c.JSON(http.StatusOK, series)
}

// stream pushes the current snapshot, then every reload, as server-sent events.
func (h *Handler) stream(c *gin.Context) {
	id, updates := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	if snap, err := h.store.Current(); err == nil {
		c.SSEvent("snapshot", snap.Info())
	}
	// send headers before blocking on the first update
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case info, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", info)
			return true
		}
	})
}
