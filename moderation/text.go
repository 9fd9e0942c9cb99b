package moderation

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errNoSentiment = errors.New("sentiment analysis failed")

type TextModerator struct {
	log      *zap.Logger
	analyzer TextAnalyzer
	opts     Options
}

func NewTextModerator(log *zap.Logger, analyzer TextAnalyzer, opts ...Option) *TextModerator {
	return &TextModerator{
		log:      log,
		analyzer: analyzer,
		opts:     ApplyOptions(opts...),
	}
}

// Moderate decides whether the text is appropriate. Category matches come
// before the sentiment bucket in the resulting provenance lists.
func (m *TextModerator) Moderate(ctx context.Context, text string) (*TextResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Domain: DomainText, Message: "text content cannot be empty"}
	}

	log := m.log.With(
		zap.String("moderation_id", uuid.NewString()),
		zap.Int("text_length", len(text)),
	)

	var (
		sentiment  *Sentiment
		categories []Signal
	)

	// Both fetches run to completion so that a failure is reported for the
	// same signal regardless of which call returns first.
	var (
		eg                          errgroup.Group
		sentimentErr, categoriesErr error
	)
	eg.Go(func() error {
		sentiment, sentimentErr = fetchSignal(ctx, log, DomainText, SignalSentiment, m.opts.policy(SignalSentiment), func(ctx context.Context) (*Sentiment, error) {
			s, err := m.analyzer.AnalyzeSentiment(ctx, text)
			if err == nil && s == nil {
				err = errNoSentiment
			}
			return s, err
		})
		return nil
	})
	eg.Go(func() error {
		categories, categoriesErr = fetchSignal(ctx, log, DomainText, SignalCategories, m.opts.policy(SignalCategories), func(ctx context.Context) ([]Signal, error) {
			return m.analyzer.ClassifyText(ctx, text)
		})
		return nil
	})
	_ = eg.Wait()

	if err := firstError(sentimentErr, categoriesErr); err != nil {
		log.Warn("Text moderation failed", zap.Error(err))
		return nil, err
	}

	if sentiment == nil {
		sentiment = &Sentiment{}
	}
	categories = CloneSignals(categories)

	result := &TextResult{
		Verdict: Aggregate(
			m.opts.TextTaxonomy.Match(categories),
			ClassifySentiment(*sentiment).Check(),
		),
		Text:       text,
		Sentiment:  *sentiment,
		Categories: categories,
	}

	log.Debug("Text moderated",
		zap.Bool("is_appropriate", result.IsAppropriate),
		zap.Stringer("recommendation", result.Recommendation),
		zap.Int("categories", len(categories)),
	)

	return result, nil
}
