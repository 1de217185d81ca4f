package worker

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

var leadsByStatus = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "leads_by_status",
		Help: "Number of leads currently in each pipeline status",
	},
	[]string{"status"},
)

type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// PipelineWorker periodically publishes the size of every pipeline column.
type PipelineWorker struct {
	counter      StatusCounter
	tickInterval time.Duration
	logger       *zap.Logger
}

func NewPipelineWorker(counter StatusCounter, logger *zap.Logger) *PipelineWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PipelineWorker{
		counter:      counter,
		tickInterval: time.Minute,
		logger:       logger,
	}
}

func (w *PipelineWorker) Start(ctx context.Context) error {
	w.logger.Info("pipeline worker started", zap.Duration("interval", w.tickInterval))

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("pipeline worker stopped")
			return nil
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *PipelineWorker) refresh(ctx context.Context) {
	counts, err := w.counter.CountByStatus(ctx)
	if err != nil {
		w.logger.Warn("failed to count leads", zap.Error(err))
		return
	}

	// every known status is reported, empty columns as zero
	for _, status := range entity.Statuses() {
		leadsByStatus.WithLabelValues(status).Set(float64(counts[status]))
	}
	w.logger.Debug("pipeline gauges refreshed", zap.Int("statuses", len(counts)))
}
