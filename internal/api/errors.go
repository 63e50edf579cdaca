package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mr1hm/quake-predictor/internal/dataset"
	"github.com/mr1hm/quake-predictor/internal/ingestion"
	"github.com/mr1hm/quake-predictor/internal/predictor"
	"github.com/mr1hm/quake-predictor/internal/simulator"
)

const (
	noDataMessage      = "No data available. Please upload a CSV file or load sample data."
	emptyFileMessage   = "The file contains no earthquake records."
	unavailableMessage = "Prediction is currently unavailable."
)

// badRequest carries a message for the client alongside the cause.
type badRequest struct {
	message string
	err     error
}

func (e *badRequest) Error() string {
	if e.err == nil {
		return e.message
	}
	return e.message + ": " + e.err.Error()
}

func (e *badRequest) Unwrap() error {
	return e.err
}

func writeError(c *gin.Context, err error) {
	var (
		inputErr *simulator.InputError
		reqErr   *badRequest
		sizeErr  *http.MaxBytesError
	)

	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": inputErr.Message, "field": inputErr.Field})
	case errors.Is(err, dataset.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": noDataMessage})
	case errors.Is(err, ingestion.ErrEmptyFile), errors.Is(err, dataset.ErrEmptyDataset):
		c.JSON(http.StatusBadRequest, gin.H{"error": emptyFileMessage})
	case errors.As(err, &sizeErr):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
	case errors.As(err, &reqErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": reqErr.Error()})
	case errors.Is(err, predictor.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": unavailableMessage})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "request canceled"})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
	c.Error(err)
}
