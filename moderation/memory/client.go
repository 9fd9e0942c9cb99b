package memory

import (
	"context"
	"sync"

	"github.com/code-payments/flipchat-moderation/moderation"
)

// Client is a memory-based analyzer with predetermined signals. Each signal
// can be made to fail independently.
type Client struct {
	mu sync.RWMutex

	safeSearch *moderation.SafeSearch
	labels     []moderation.Signal
	sentiment  *moderation.Sentiment
	categories []moderation.Signal

	errs map[moderation.SignalKind]error

	calls map[moderation.SignalKind]int
}

type Option func(*Client)

func WithSafeSearch(ss moderation.SafeSearch) Option {
	return func(c *Client) {
		c.safeSearch = &ss
	}
}

func WithLabels(labels ...moderation.Signal) Option {
	return func(c *Client) {
		c.labels = moderation.CloneSignals(labels)
	}
}

func WithSentiment(s moderation.Sentiment) Option {
	return func(c *Client) {
		c.sentiment = &s
	}
}

func WithCategories(categories ...moderation.Signal) Option {
	return func(c *Client) {
		c.categories = moderation.CloneSignals(categories)
	}
}

// WithError makes every request for the signal fail with err.
func WithError(kind moderation.SignalKind, err error) Option {
	return func(c *Client) {
		c.errs[kind] = err
	}
}

// NewClient creates a new memory-based analyzer. Unset signals resolve to
// their neutral value: all UNKNOWN safe search, zero sentiment, no labels or
// categories.
func NewClient(opts ...Option) *Client {
	c := &Client{
		safeSearch: &moderation.SafeSearch{},
		sentiment:  &moderation.Sentiment{},
		errs:       make(map[moderation.SignalKind]error),
		calls:      make(map[moderation.SignalKind]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) DetectSafeSearch(_ context.Context, _ []byte) (*moderation.SafeSearch, error) {
	if err := c.record(moderation.SignalSafeSearch); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	copied := *c.safeSearch
	return &copied, nil
}

func (c *Client) DetectLabels(_ context.Context, _ []byte) ([]moderation.Signal, error) {
	if err := c.record(moderation.SignalLabels); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return moderation.CloneSignals(c.labels), nil
}

func (c *Client) AnalyzeSentiment(_ context.Context, _ string) (*moderation.Sentiment, error) {
	if err := c.record(moderation.SignalSentiment); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	copied := *c.sentiment
	return &copied, nil
}

func (c *Client) ClassifyText(_ context.Context, _ string) ([]moderation.Signal, error) {
	if err := c.record(moderation.SignalCategories); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return moderation.CloneSignals(c.categories), nil
}

// Calls returns how many times the signal has been requested.
func (c *Client) Calls(kind moderation.SignalKind) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.calls[kind]
}

func (c *Client) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = make(map[moderation.SignalKind]int)
}

func (c *Client) record(kind moderation.SignalKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls[kind]++
	return c.errs[kind]
}
