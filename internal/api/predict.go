package api

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// formNumber accepts a JSON number or numeric text. Anything else, including
// a missing field, reads as NaN and fails validation downstream.
type formNumber struct {
	value float64
	set   bool
}

func (n *formNumber) UnmarshalJSON(b []byte) error {
	n.value, n.set = math.NaN(), true

	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			n.value = f
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.value = f
	}
	return nil
}

func (n formNumber) Float() float64 {
	if !n.set {
		return math.NaN()
	}
	return n.value
}

type predictRequest struct {
	Latitude  formNumber `json:"latitude"`
	Longitude formNumber `json:"longitude"`
	Depth     formNumber `json:"depth"`
}

func (h *Handler) predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &badRequest{message: "invalid request body", err: err})
		return
	}

	p, err := h.predictor.Predict(c.Request.Context(), req.Latitude.Float(), req.Longitude.Float(), req.Depth.Float())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
