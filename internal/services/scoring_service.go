// internal/services/scoring_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/deliciae/discovery-core/internal/geo"
	"github.com/deliciae/discovery-core/internal/models"
	"github.com/deliciae/discovery-core/internal/repository"
)

// Trend weights. They sum to 1 so scores stay comparable between passes.
const (
	OrderWeight      = 0.5
	SearchWeight     = 0.3
	EngagementWeight = 0.2
)

// ItemScoreStore is the catalog read and write path used by recompute.
type ItemScoreStore interface {
	ListAvailable(ctx context.Context) ([]models.CatalogItem, error)
	UpdateScores(ctx context.Context, id uuid.UUID, update repository.ScoreUpdate) error
	SetPopularity(ctx context.Context, id uuid.UUID, score float64) error
}

type EventCounter interface {
	CountInteractions(ctx context.Context, itemID uuid.UUID, from, to time.Time) (map[models.InteractionKind]int64, error)
	CountEngagements(ctx context.Context, itemID uuid.UUID) (map[models.EngagementKind]int64, error)
}

// Invalidator drops read views derived from scores.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type ScoringConfig struct {
	Workers        int
	SelloutHorizon time.Duration
}

type ScoringService struct {
	store       ItemScoreStore
	events      EventCounter
	invalidator Invalidator
	cfg         ScoringConfig
	now         func() time.Time
}

// Signals are the per-item inputs of the trend formula.
type Signals struct {
	Orders int64
	// Searches counts views, searches and clicks.
	Searches int64
	// Engagement is likes plus twice the comments.
	Engagement int64
}

type RecomputeReport struct {
	WindowHours  float64       `json:"window_hours"`
	Scored       int           `json:"scored"`
	SkippedCount int           `json:"skipped_count"`
	Skipped      []SkippedItem `json:"skipped"`
	StartedAt    time.Time     `json:"started_at"`
	DurationMs   int64         `json:"duration_ms"`
}

// Err returns a *PartialComputeError when any item was skipped.
func (r *RecomputeReport) Err() error {
	if len(r.Skipped) == 0 {
		return nil
	}
	return &PartialComputeError{Skipped: r.Skipped}
}

func NewScoringService(store ItemScoreStore, events EventCounter, invalidator Invalidator, cfg ScoringConfig) *ScoringService {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &ScoringService{
		store:       store,
		events:      events,
		invalidator: invalidator,
		cfg:         cfg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// TrendScore blends the signals with the fixed weights, rounded to 2 places.
func TrendScore(s Signals) float64 {
	raw := float64(s.Orders)*OrderWeight +
		float64(s.Searches)*SearchWeight +
		float64(s.Engagement)*EngagementWeight
	return geo.Round2(raw)
}

// SignalsFrom folds raw per-kind counts into Signals. Unknown kinds are
// malformed data.
func SignalsFrom(interactions map[models.InteractionKind]int64, engagements map[models.EngagementKind]int64) (Signals, error) {
	var s Signals
	for kind, n := range interactions {
		if n < 0 {
			return Signals{}, fmt.Errorf("%w: negative %s count", ErrMalformedData, kind)
		}
		switch kind {
		case models.InteractionOrder:
			s.Orders += n
		case models.InteractionView, models.InteractionSearch, models.InteractionClick:
			s.Searches += n
		default:
			return Signals{}, fmt.Errorf("%w: unknown interaction kind %q", ErrMalformedData, kind)
		}
	}
	for kind, n := range engagements {
		if n < 0 {
			return Signals{}, fmt.Errorf("%w: negative %s count", ErrMalformedData, kind)
		}
		switch kind {
		case models.EngagementLike:
			s.Engagement += n
		case models.EngagementComment:
			s.Engagement += 2 * n
		default:
			return Signals{}, fmt.Errorf("%w: unknown engagement kind %q", ErrMalformedData, kind)
		}
	}
	return s, nil
}

// PredictDepletion extrapolates the order rate over window to estimate when
// quantity runs out. It returns nil when nothing is selling, nothing is left,
// or the estimate lies beyond horizon.
func PredictDepletion(quantity int, orders int64, window, horizon time.Duration, now time.Time) *time.Time {
	if quantity <= 0 || orders <= 0 || window <= 0 {
		return nil
	}
	ratePerHour := float64(orders) / window.Hours()
	hours := float64(quantity) / ratePerHour
	if horizon > 0 && hours > horizon.Hours() {
		return nil
	}
	at := now.Add(time.Duration(hours * float64(time.Hour)))
	return &at
}

// RecomputeScores rescores every available item from events inside
// [now-window, now]. Items with malformed data, and items deleted while the
// pass runs, are skipped and listed in the report. Any other failure stops
// the pass; items already written keep their new score.
func (s *ScoringService) RecomputeScores(ctx context.Context, window time.Duration) (*RecomputeReport, error) {
	if window <= 0 {
		return nil, invalidQuery("window", "must be positive")
	}

	startedAt := s.now()
	from := startedAt.Add(-window)

	items, err := s.store.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for scoring: %w", err)
	}

	var (
		mu      sync.Mutex
		scored  int
		skipped []SkippedItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i := range items {
		item := &items[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			err := s.scoreItem(gctx, item, from, startedAt, window)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				scored++
				return nil
			case errors.Is(err, ErrMalformedData):
				skipped = append(skipped, SkippedItem{ItemID: item.ID, Reason: err.Error()})
				logrus.WithError(err).WithField("item_id", item.ID).Warn("Skipping item during score recompute")
				return nil
			case errors.Is(err, gorm.ErrRecordNotFound):
				skipped = append(skipped, SkippedItem{ItemID: item.ID, Reason: "deleted during recompute"})
				logrus.WithField("item_id", item.ID).Warn("Item deleted during score recompute")
				return nil
			default:
				return fmt.Errorf("failed to score item %s: %w", item.ID, err)
			}
		})
	}
	if err := g.Wait(); err != nil {
		logrus.WithError(err).WithField("scored", scored).Error("Score recompute aborted")
		return nil, err
	}

	sort.Slice(skipped, func(a, b int) bool {
		return skipped[a].ItemID.String() < skipped[b].ItemID.String()
	})
	if skipped == nil {
		skipped = []SkippedItem{}
	}

	report := &RecomputeReport{
		WindowHours:  window.Hours(),
		Scored:       scored,
		SkippedCount: len(skipped),
		Skipped:      skipped,
		StartedAt:    startedAt,
		DurationMs:   time.Since(startedAt).Milliseconds(),
	}

	s.invalidate(ctx)

	logrus.WithFields(logrus.Fields{
		"scored":       report.Scored,
		"skipped":      report.SkippedCount,
		"window_hours": report.WindowHours,
		"duration_ms":  report.DurationMs,
	}).Info("Score recompute finished")

	return report, nil
}

func (s *ScoringService) scoreItem(ctx context.Context, item *models.CatalogItem, from, now time.Time, window time.Duration) error {
	if item.QuantityRemaining < 0 {
		return fmt.Errorf("%w: negative quantity %d", ErrMalformedData, item.QuantityRemaining)
	}

	interactions, err := s.events.CountInteractions(ctx, item.ID, from, now)
	if err != nil {
		return err
	}
	engagements, err := s.events.CountEngagements(ctx, item.ID)
	if err != nil {
		return err
	}

	signals, err := SignalsFrom(interactions, engagements)
	if err != nil {
		return err
	}

	score := TrendScore(signals)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return fmt.Errorf("%w: non-finite trend score", ErrMalformedData)
	}

	return s.store.UpdateScores(ctx, item.ID, repository.ScoreUpdate{
		TrendScore:           score,
		EstimatedDepletionAt: PredictDepletion(item.QuantityRemaining, signals.Orders, window, s.cfg.SelloutHorizon, now),
		ScoredAt:             now,
	})
}

// SetPopularity stores an externally assigned popularity score in [0, 100].
func (s *ScoringService) SetPopularity(ctx context.Context, itemID uuid.UUID, score float64) error {
	if math.IsNaN(score) || score < 0 || score > 100 {
		return invalidQuery("popularity_score", "must be between 0 and 100")
	}
	if err := s.store.SetPopularity(ctx, itemID, score); err != nil {
		return notFound(err, "catalog item")
	}
	s.invalidate(ctx)
	return nil
}

func (s *ScoringService) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Invalidate(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate cached views")
	}
}
