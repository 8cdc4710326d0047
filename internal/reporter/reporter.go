// Package reporter batches anonymous calculation events and delivers them to
// a webhook.
package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"nutrition-calculator/internal/config"
	"nutrition-calculator/internal/model"
)

const maxAttempts = 3

// Reporter accepts events and controls the delivery lifecycle.
type Reporter interface {
	Add(event model.CalculationEvent)
	Start()
	Stop()
}

// reporter buffers events and flushes them on size, on a ticker, and on Stop.
type reporter struct {
	log      *zap.Logger
	endpoint string
	size     int
	delay    time.Duration
	client   *http.Client

	mu     sync.Mutex
	events []model.CalculationEvent
	ticker *time.Ticker
	quit   chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
}

// New returns a Reporter for cfg. Without a report endpoint the returned
// Reporter discards everything.
func New(cfg *config.Config, log *zap.Logger) Reporter {
	if cfg.ReportEndpoint == "" {
		return Nop{}
	}
	return &reporter{
		log:      log,
		endpoint: cfg.ReportEndpoint,
		size:     cfg.ReportBatchSize,
		delay:    cfg.ReportRetryDelay,
		client:   &http.Client{Timeout: 5 * time.Second},
		ticker:   time.NewTicker(cfg.ReportInterval),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Add buffers event. A full batch is flushed in the background.
func (r *reporter) Add(event model.CalculationEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	full := len(r.events) >= r.size
	r.mu.Unlock()

	if full {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.flush()
		}()
	}
}

// Start runs the periodic flush loop until Stop is called.
func (r *reporter) Start() {
	defer close(r.done)
	for {
		select {
		case <-r.ticker.C:
			r.flush()
		case <-r.quit:
			r.ticker.Stop()
			r.wg.Wait()
			r.flush()
			return
		}
	}
}

// Stop flushes what is buffered and waits for the loop to exit. Start must
// be running.
func (r *reporter) Stop() {
	close(r.quit)
	<-r.done
}

func (r *reporter) flush() {
	r.mu.Lock()
	if len(r.events) == 0 {
		r.mu.Unlock()
		return
	}
	batch := r.events
	r.events = nil
	r.mu.Unlock()

	payload, err := json.Marshal(batch)
	if err != nil {
		r.log.Error("failed to marshal report batch", zap.Error(err))
		return
	}

	start := time.Now()
	var status int
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		status, err = r.post(payload)
		if err == nil {
			break
		}
		r.log.Warn("report delivery failed", zap.Int("attempt", attempt), zap.Error(err))
		if attempt < maxAttempts {
			time.Sleep(r.delay)
		}
	}

	if err != nil {
		r.log.Error("report batch dropped", zap.Int("size", len(batch)), zap.Int("attempts", maxAttempts), zap.Error(err))
		return
	}

	r.log.Info("report batch sent",
		zap.Int("size", len(batch)),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)))
}

func (r *reporter) post(payload []byte) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}

// Nop is a Reporter that drops every event.
type Nop struct{}

func (Nop) Add(model.CalculationEvent) {}
func (Nop) Start()                     {}
func (Nop) Stop()                      {}
