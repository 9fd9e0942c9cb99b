package moderation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errNoSafeSearch = errors.New("safe search analysis failed")

type ImageModerator struct {
	log      *zap.Logger
	analyzer ImageAnalyzer
	opts     Options
}

func NewImageModerator(log *zap.Logger, analyzer ImageAnalyzer, opts ...Option) *ImageModerator {
	return &ImageModerator{
		log:      log,
		analyzer: analyzer,
		opts:     ApplyOptions(opts...),
	}
}

// Moderate decides whether the image is appropriate. Safe search and labels
// are requested concurrently; the verdict is computed once both resolved.
func (m *ImageModerator) Moderate(ctx context.Context, image []byte) (*ImageResult, error) {
	if len(image) == 0 {
		return nil, &ValidationError{Domain: DomainImage, Message: "image content cannot be empty"}
	}

	log := m.log.With(
		zap.String("moderation_id", uuid.NewString()),
		zap.Int("image_size", len(image)),
	)

	var (
		safeSearch *SafeSearch
		labels     []Signal
	)

	// Both fetches run to completion so that a failure is reported for the
	// same signal regardless of which call returns first.
	var (
		eg                       errgroup.Group
		safeSearchErr, labelsErr error
	)
	eg.Go(func() error {
		safeSearch, safeSearchErr = fetchSignal(ctx, log, DomainImage, SignalSafeSearch, m.opts.policy(SignalSafeSearch), func(ctx context.Context) (*SafeSearch, error) {
			ss, err := m.analyzer.DetectSafeSearch(ctx, image)
			if err == nil && ss == nil {
				err = errNoSafeSearch
			}
			return ss, err
		})
		return nil
	})
	eg.Go(func() error {
		labels, labelsErr = fetchSignal(ctx, log, DomainImage, SignalLabels, m.opts.policy(SignalLabels), func(ctx context.Context) ([]Signal, error) {
			return m.analyzer.DetectLabels(ctx, image)
		})
		return nil
	})
	_ = eg.Wait()

	if err := firstError(safeSearchErr, labelsErr); err != nil {
		log.Warn("Image moderation failed", zap.Error(err))
		return nil, err
	}

	if safeSearch == nil {
		safeSearch = &SafeSearch{}
	}
	labels = CloneSignals(labels)

	result := &ImageResult{
		Verdict: Aggregate(
			CheckSafeSearch(*safeSearch),
			m.opts.ImageTaxonomy.Match(labels),
		),
		SafeSearch: *safeSearch,
		Labels:     labels,
	}

	log.Debug("Image moderated",
		zap.Bool("is_appropriate", result.IsAppropriate),
		zap.Stringer("recommendation", result.Recommendation),
		zap.Int("labels", len(labels)),
	)

	return result, nil
}
