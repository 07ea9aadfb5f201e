package pos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kingmrb/post-call-webhook/internal/order"
)

// Submitter forwards an assembled order to the point-of-sale system.
// Submission failure never invalidates the parsed order; the caller logs it
// and moves on.
type Submitter interface {
	Submit(ctx context.Context, o *order.Order) error
}

// ToastClient posts orders to the Toast location endpoint with bearer auth.
type ToastClient struct {
	apiKey     string
	locationID string
	baseURL    string
	client     *http.Client
	log        *zap.Logger
}

func NewToastClient(apiKey, locationID, baseURL string, log *zap.Logger) *ToastClient {
	return &ToastClient{
		apiKey:     apiKey,
		locationID: locationID,
		baseURL:    baseURL,
		client:     &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

func (t *ToastClient) Submit(ctx context.Context, o *order.Order) error {
	body, err := json.Marshal(map[string]any{"order": o})
	if err != nil {
		return fmt.Errorf("pos: marshal order: %w", err)
	}

	url := fmt.Sprintf("%s/locations/%s/orders", t.baseURL, t.locationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("pos: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("pos: submit: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("pos: status %d: %s", resp.StatusCode, raw)
	}

	t.log.Info("order submitted to POS",
		zap.String("call_id", o.CallID),
		zap.Float64("total", o.Total))
	return nil
}

// Noop stands in when no POS credentials are configured.
type Noop struct {
	log *zap.Logger
}

func NewNoop(log *zap.Logger) *Noop {
	return &Noop{log: log}
}

func (n *Noop) Submit(_ context.Context, o *order.Order) error {
	n.log.Info("POS disabled, order not submitted",
		zap.String("call_id", o.CallID),
		zap.Int("item_count", len(o.Items)))
	return nil
}
