// Package feed consumes the asynchronous transaction/label/score feed
// from Kafka and applies it through the ingest use case.
package feed

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/klauspost/compress/zstd"
	"github.com/segmentio/kafka-go"

	"github.com/user/fraud-lens/internal/adapter/metrics"
	"github.com/user/fraud-lens/internal/domain"
	"github.com/user/fraud-lens/internal/pkg/timefmt"
	"github.com/user/fraud-lens/internal/usecase"
)

// Envelope is one feed message. Kind selects which payload is set.
type Envelope struct {
	Kind        string                   `json:"kind"` // transaction | label | score
	Transaction *domain.TransactionEvent `json:"transaction,omitempty"`
	Label       *domain.LabelEvent       `json:"label,omitempty"`
	Score       *domain.ScoreEvent       `json:"score,omitempty"`
}

// zstd frame magic; batch producers may compress NDJSON payloads.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Consumer reads feed envelopes from Kafka and applies them.
type Consumer struct {
	reader  *kafka.Reader
	ingest  usecase.FeedIngestUseCase
	logger  *slog.Logger
	m       *metrics.Metrics
	decoder *zstd.Decoder
}

// NewConsumer creates a Kafka-backed feed consumer.
func NewConsumer(brokers []string, topic, groupID string, ingest usecase.FeedIngestUseCase, logger *slog.Logger, m *metrics.Metrics) (*Consumer, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("init zstd decoder: %w", err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})

	return &Consumer{
		reader:  reader,
		ingest:  ingest,
		logger:  logger.With("component", "feed_consumer"),
		m:       m,
		decoder: decoder,
	}, nil
}

// Run consumes until the context is cancelled. Row-level problems are
// logged and skipped; the offset is committed either way so one corrupt
// message cannot wedge the partition. Storage failures are not committed
// and will be re-fetched.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("fetch feed message: %w", err)
		}

		if err := c.Apply(ctx, msg.Value); err != nil {
			if isRowError(err) {
				c.logger.Warn("skipping undecodable feed message", "error", err, "offset", msg.Offset)
			} else {
				// Storage trouble: leave the offset uncommitted and surface.
				return fmt.Errorf("apply feed message at offset %d: %w", msg.Offset, err)
			}
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit feed offset: %w", err)
		}
	}
}

// Close releases the underlying Kafka reader.
func (c *Consumer) Close() error {
	c.decoder.Close()
	return c.reader.Close()
}

// Apply decodes a message payload and applies the contained events. A
// payload is either a single JSON envelope or a zstd-compressed NDJSON
// batch of envelopes.
func (c *Consumer) Apply(ctx context.Context, payload []byte) error {
	if bytes.HasPrefix(payload, zstdMagic) {
		raw, err := c.decoder.DecodeAll(payload, nil)
		if err != nil {
			return fmt.Errorf("%w: zstd batch: %v", errDecode, err)
		}
		return c.applyBatch(ctx, raw)
	}
	return c.applyOne(ctx, payload)
}

func (c *Consumer) applyBatch(ctx context.Context, raw []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := c.applyOne(ctx, line); err != nil {
			// One bad row degrades gracefully; the rest of the batch lands.
			if isRowError(err) {
				c.logger.Warn("skipping bad row in feed batch", "error", err)
				continue
			}
			return err
		}
	}
	return scanner.Err()
}

var errDecode = errors.New("undecodable feed payload")

// isRowError reports whether the failure is confined to one feed row
// (undecodable payload or rejected event) rather than a storage problem.
func isRowError(err error) bool {
	return errors.Is(err, errDecode) ||
		errors.Is(err, domain.ErrInvalidParameter) ||
		errors.Is(err, timefmt.ErrMalformedTimestamp)
}

func (c *Consumer) applyOne(ctx context.Context, payload []byte) error {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		c.m.FeedEventsTotal.WithLabelValues("unknown", "rejected").Inc()
		return fmt.Errorf("%w: %v", errDecode, err)
	}

	var err error
	switch {
	case env.Kind == "transaction" && env.Transaction != nil:
		err = c.ingest.ApplyTransaction(ctx, *env.Transaction)
	case env.Kind == "label" && env.Label != nil:
		err = c.ingest.ApplyLabel(ctx, *env.Label)
	case env.Kind == "score" && env.Score != nil:
		err = c.ingest.ApplyScore(ctx, *env.Score)
	default:
		c.m.FeedEventsTotal.WithLabelValues(env.Kind, "rejected").Inc()
		return fmt.Errorf("%w: kind %q without matching payload", errDecode, env.Kind)
	}

	switch {
	case err == nil:
		c.m.FeedEventsTotal.WithLabelValues(env.Kind, "applied").Inc()
	case isRowError(err):
		c.m.FeedEventsTotal.WithLabelValues(env.Kind, "rejected").Inc()
	default:
		c.m.FeedEventsTotal.WithLabelValues(env.Kind, "error").Inc()
	}
	return err
}
