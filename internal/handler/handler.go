// Package handler contains HTTP handlers for the calculator API.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"nutrition-calculator/internal/calculator"
	"nutrition-calculator/internal/middleware"
	"nutrition-calculator/internal/model"
	"nutrition-calculator/internal/reporter"
)

// OutcomeOK labels successful calculations in metrics and reports.
const OutcomeOK = "ok"

var calculationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "nutrition_calculations_total",
		Help: "Total number of calculation requests by outcome",
	},
	[]string{"outcome"},
)

// Handler wraps HTTP handlers with logger, calculator and reporter.
type Handler struct {
	log    *zap.Logger
	calc   *calculator.Calculator
	report reporter.Reporter
	now    func() time.Time
}

// New creates a new Handler instance.
func New(log *zap.Logger, calc *calculator.Calculator, r reporter.Reporter) *Handler {
	return &Handler{log: log, calc: calc, report: r, now: time.Now}
}

// Healthz is a simple health check endpoint.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// Calculate evaluates the query parameters. Rejected input is still answered
// with 200 and success=false.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	body, in, violation := h.calc.Respond(r.URL.Query())
	requestID := middleware.RequestIDFromContext(r.Context())

	outcome := OutcomeOK
	if violation != nil {
		outcome = string(violation.Kind)
		h.log.Debug("calculation rejected",
			zap.String("request_id", requestID),
			zap.String("kind", outcome))
	}
	calculationsTotal.WithLabelValues(outcome).Inc()

	h.report.Add(model.CalculationEvent{
		RequestID:     requestID,
		Timestamp:     h.now().UTC(),
		Outcome:       outcome,
		ActivityLevel: in.ActivityLevel,
		Goal:          in.Goal,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		h.log.Error("unable to write response stream", zap.Error(err))
	}
}
