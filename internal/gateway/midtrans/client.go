package midtrans

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"relove/internal/config"
	"relove/internal/monitor"
	"relove/pkg/log"
	"relove/pkg/utils"
)

// Gateway creates hosted checkout sessions
type Gateway interface {
	// Create a Snap payment session for the given order
	CreateTransaction(ctx context.Context, req *SnapRequest) (*SnapResponse, error)
}

// client Snap API client authenticated with the merchant server key
type client struct {
	baseURL    string
	serverKey  string
	appURL     string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a Snap client from the gateway config
func NewClient(cfg *config.MidtransConfig) Gateway {
	return &client{
		baseURL:   cfg.BaseURL,
		serverKey: cfg.ServerKey,
		appURL:    cfg.AppURL,
		timeout:   cfg.Timeout,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// CreateTransaction posts the order to the Snap transaction endpoint.
// A deadline hit maps to a timeout error so the caller can tell a slow
// gateway apart from a rejecting one.
func (c *client) CreateTransaction(ctx context.Context, req *SnapRequest) (*SnapResponse, error) {
	if req.Callbacks == nil && c.appURL != "" {
		req.Callbacks = &Callbacks{Finish: c.appURL + "/orders"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, utils.WrapError(err, utils.CodeGatewayUnavailable, "encode snap request failed")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/snap/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, utils.WrapError(err, utils.CodeGatewayUnavailable, "build snap request failed")
	}
	httpReq.SetBasicAuth(c.serverKey, "")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			monitor.GatewayRequestDuration.WithLabelValues("timeout").Observe(time.Since(start).Seconds())
			log.WithError(err).Warn("Snap transaction request timed out")
			return nil, utils.ErrGatewayTimeout
		}
		monitor.GatewayRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		log.WithError(err).Error("Snap transaction request failed")
		return nil, utils.ErrGatewayUnavailable
	}
	monitor.GatewayRequestDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(respBody),
		}).Error("Snap transaction rejected")
		return nil, utils.ErrGatewayUnavailable
	}

	var snap SnapResponse
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, utils.WrapError(err, utils.CodeGatewayUnavailable, "decode snap response failed")
	}
	if snap.Token == "" {
		return nil, utils.ErrGatewayUnavailable
	}

	return &snap, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
