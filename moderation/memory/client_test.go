package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/code-payments/flipchat-moderation/moderation"
	"github.com/code-payments/flipchat-moderation/moderation/tests"
)

type backend struct {
	clients []*Client
}

func (b *backend) ImageAnalyzer(_ *testing.T, safeSearch moderation.SafeSearch, labels []moderation.Signal) moderation.ImageAnalyzer {
	c := NewClient(WithSafeSearch(safeSearch), WithLabels(labels...))
	b.clients = append(b.clients, c)
	return c
}

func (b *backend) TextAnalyzer(_ *testing.T, sentiment moderation.Sentiment, categories []moderation.Signal) moderation.TextAnalyzer {
	c := NewClient(WithSentiment(sentiment), WithCategories(categories...))
	b.clients = append(b.clients, c)
	return c
}

func TestMemoryClient(t *testing.T) {
	b := &backend{}
	teardown := func() {
		for _, c := range b.clients {
			c.reset()
		}
		b.clients = nil
	}

	tests.RunImageModerationTests(t, b, teardown)
	tests.RunTextModerationTests(t, b, teardown)
}

func TestMemoryClient_Errors(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")

	c := NewClient(WithError(moderation.SignalLabels, errBoom))

	_, err := c.DetectLabels(ctx, []byte("image"))
	require.ErrorIs(t, err, errBoom)

	ss, err := c.DetectSafeSearch(ctx, []byte("image"))
	require.NoError(t, err)
	require.Equal(t, moderation.SafeSearch{}, *ss)

	require.Equal(t, 1, c.Calls(moderation.SignalLabels))
	require.Equal(t, 1, c.Calls(moderation.SignalSafeSearch))
	require.Equal(t, 0, c.Calls(moderation.SignalSentiment))

	c.reset()
	require.Equal(t, 0, c.Calls(moderation.SignalLabels))
}

func TestMemoryClient_Copies(t *testing.T) {
	ctx := context.Background()
	c := NewClient(WithCategories(moderation.Signal{Name: "/Sports", Confidence: 0.9}))

	categories, err := c.ClassifyText(ctx, "text")
	require.NoError(t, err)
	categories[0].Name = "mutated"

	categories, err = c.ClassifyText(ctx, "text")
	require.NoError(t, err)
	require.Equal(t, "/Sports", categories[0].Name)
}
