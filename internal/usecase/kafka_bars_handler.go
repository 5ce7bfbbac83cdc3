package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"MarketSim/internal/domain/models"
	"MarketSim/internal/domain/repository"
	"MarketSim/internal/services/market"
	applogger "MarketSim/pkg/logger"
)

// KafkaBarsHandler consumes externally produced bars, validates them,
// and stores the clean ones. Payloads may be a single bar or an array.
type KafkaBarsHandler struct {
	topic   string
	store   repository.BarStore
	metrics repository.Metrics
	log     *applogger.Logger
	rules   models.ValidationRules
}

// NewKafkaBarsHandler creates a handler bound to the ingest topic.
func NewKafkaBarsHandler(topic string, store repository.BarStore, m repository.Metrics, log *applogger.Logger) *KafkaBarsHandler {
	return &KafkaBarsHandler{
		topic:   topic,
		store:   store,
		metrics: m,
		log:     log,
		rules:   models.DefaultValidationRules(),
	}
}

// Topic returns the subscribed topic.
func (h *KafkaBarsHandler) Topic() string { return h.topic }

// Handle decodes, validates, and stores one message's bars. Bars that
// fail validation are dropped and counted; a message where every bar is
// bad is an error so retry and DLQ policy apply.
func (h *KafkaBarsHandler) Handle(ctx context.Context, data []byte) error {
	bars, err := decodeBars(data)
	if err != nil {
		h.metrics.RecordError("ingest_decode")
		return fmt.Errorf("decode bars: %w", err)
	}
	if len(bars) == 0 {
		return nil
	}

	clean := make([]models.Bar, 0, len(bars))
	for i := range bars {
		violations := market.ValidateBar(bars[i], &h.rules)
		if len(violations) == 0 {
			clean = append(clean, bars[i])
			continue
		}
		for _, v := range violations {
			h.metrics.RecordViolation(v.Rule)
		}
		if h.log != nil {
			h.log.Warn("ingested bar rejected",
				applogger.String("symbol", bars[i].Symbol),
				applogger.Int("violations", len(violations)),
			)
		}
	}

	if len(clean) == 0 {
		return fmt.Errorf("all %d bars rejected: %w", len(bars), models.ErrValidationFailed)
	}

	if h.store != nil {
		if err := h.store.StoreBatch(ctx, clean); err != nil {
			h.metrics.RecordError("ingest_store")
			return fmt.Errorf("store ingested bars: %w", err)
		}
	}
	return nil
}

func decodeBars(data []byte) ([]models.Bar, error) {
	var many []models.Bar
	if err := json.Unmarshal(data, &many); err == nil {
		return many, nil
	}
	var one models.Bar
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, err
	}
	return []models.Bar{one}, nil
}
