package llm

import (
	"context"
	"errors"
)

// ErrUnavailable is returned for every degradation cause: missing
// credentials, network failure, non-2xx response, or output that is not the
// JSON we asked for. Callers fall back to the regex pipeline; this error is
// never fatal.
var ErrUnavailable = errors.New("llm: order parser unavailable")

// ParsedItem is one order line as the model understood it. Item is a free
// guess that still goes through catalog normalization downstream.
type ParsedItem struct {
	Quantity   int    `json:"quantity"`
	Item       string `json:"item"`
	SpiceLevel string `json:"spice_level,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// OrderParser turns confirmed order text into structured candidate items.
// Implementations are unreliable by contract; a nil result with
// ErrUnavailable is an expected outcome, not an exception.
type OrderParser interface {
	ParseOrderText(ctx context.Context, orderText string) ([]ParsedItem, error)
}
