package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ReneKroon/ttlcache"

	"github.com/code-payments/flipchat-moderation/moderation"
)

// ImageAnalyzer memoizes successful analyzer responses keyed by content
// digest. Failures are never cached.
type ImageAnalyzer struct {
	analyzer moderation.ImageAnalyzer
	cache    *ttlcache.Cache
}

func NewImageAnalyzer(analyzer moderation.ImageAnalyzer, ttl time.Duration) *ImageAnalyzer {
	return &ImageAnalyzer{
		analyzer: analyzer,
		cache:    newCache(ttl),
	}
}

func (a *ImageAnalyzer) DetectSafeSearch(ctx context.Context, image []byte) (*moderation.SafeSearch, error) {
	cacheKey := toCacheKey(moderation.SignalSafeSearch, image)

	cached, ok := a.cache.Get(cacheKey)
	if ok {
		copied := *cached.(*moderation.SafeSearch)
		return &copied, nil
	}

	safeSearch, err := a.analyzer.DetectSafeSearch(ctx, image)
	if err != nil {
		return nil, err
	}
	if safeSearch == nil {
		return nil, nil
	}

	copied := *safeSearch
	a.cache.Set(cacheKey, &copied)

	return safeSearch, nil
}

func (a *ImageAnalyzer) DetectLabels(ctx context.Context, image []byte) ([]moderation.Signal, error) {
	return signals(ctx, a.cache, toCacheKey(moderation.SignalLabels, image), func(ctx context.Context) ([]moderation.Signal, error) {
		return a.analyzer.DetectLabels(ctx, image)
	})
}

// TextAnalyzer is the text counterpart of ImageAnalyzer.
type TextAnalyzer struct {
	analyzer moderation.TextAnalyzer
	cache    *ttlcache.Cache
}

func NewTextAnalyzer(analyzer moderation.TextAnalyzer, ttl time.Duration) *TextAnalyzer {
	return &TextAnalyzer{
		analyzer: analyzer,
		cache:    newCache(ttl),
	}
}

func (a *TextAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (*moderation.Sentiment, error) {
	cacheKey := toCacheKey(moderation.SignalSentiment, []byte(text))

	cached, ok := a.cache.Get(cacheKey)
	if ok {
		copied := *cached.(*moderation.Sentiment)
		return &copied, nil
	}

	sentiment, err := a.analyzer.AnalyzeSentiment(ctx, text)
	if err != nil {
		return nil, err
	}
	if sentiment == nil {
		return nil, nil
	}

	copied := *sentiment
	a.cache.Set(cacheKey, &copied)

	return sentiment, nil
}

func (a *TextAnalyzer) ClassifyText(ctx context.Context, text string) ([]moderation.Signal, error) {
	return signals(ctx, a.cache, toCacheKey(moderation.SignalCategories, []byte(text)), func(ctx context.Context) ([]moderation.Signal, error) {
		return a.analyzer.ClassifyText(ctx, text)
	})
}

func signals(
	ctx context.Context,
	cache *ttlcache.Cache,
	cacheKey string,
	fetch func(context.Context) ([]moderation.Signal, error),
) ([]moderation.Signal, error) {
	cached, ok := cache.Get(cacheKey)
	if ok {
		return moderation.CloneSignals(cached.([]moderation.Signal)), nil
	}

	fetched, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	cache.Set(cacheKey, moderation.CloneSignals(fetched))
	return fetched, nil
}

func newCache(ttl time.Duration) *ttlcache.Cache {
	cache := ttlcache.NewCache()
	cache.SetTTL(ttl)
	return cache
}

func toCacheKey(kind moderation.SignalKind, content []byte) string {
	digest := sha256.Sum256(content)
	return string(kind) + ":" + hex.EncodeToString(digest[:])
}
