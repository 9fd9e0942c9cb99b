package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/code-payments/flipchat-moderation/moderation"
	"github.com/code-payments/flipchat-moderation/moderation/memory"
)

// Fixtures are recorded analyzer signals replayed through the moderators
// without contacting any external service.
type Fixtures struct {
	Images []ImageFixture `yaml:"images"`
	Texts  []TextFixture  `yaml:"texts"`
}

type ImageFixture struct {
	Name       string                     `yaml:"name"`
	SafeSearch moderation.SafeSearch      `yaml:"safe_search"`
	Labels     []moderation.Signal        `yaml:"labels"`
	Expect     *moderation.Recommendation `yaml:"expect"`
}

type TextFixture struct {
	Name       string                     `yaml:"name"`
	Text       string                     `yaml:"text"`
	Sentiment  moderation.Sentiment       `yaml:"sentiment"`
	Categories []moderation.Signal        `yaml:"categories"`
	Expect     *moderation.Recommendation `yaml:"expect"`
}

// fixtureContent stands in for the moderated content. The memory analyzer
// ignores it, but moderators reject empty input.
const fixtureContent = "fixture"

type replayOutcome struct {
	Name    string             `json:"name"`
	Summary moderation.Summary `json:"summary"`
	Passed  *bool              `json:"passed,omitempty"`
}

func loadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fixtures Fixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures %s: %w", path, err)
	}
	return &fixtures, nil
}

// replay moderates every fixture, writes one indented JSON outcome per
// fixture to w and returns the number of fixtures whose recommendation did
// not match the expected one.
func replay(ctx context.Context, log *zap.Logger, fixtures *Fixtures, w io.Writer, opts ...moderation.Option) (int, error) {
	var failed int

	report := func(name string, result moderation.Result, expect *moderation.Recommendation) error {
		outcome := replayOutcome{
			Name:    name,
			Summary: moderation.Summarize(result),
		}
		if expect != nil {
			passed := outcome.Summary.Recommendation == *expect
			outcome.Passed = &passed
			if !passed {
				failed++
			}
		}

		out, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	for i, fixture := range fixtures.Images {
		name := fixture.Name
		if name == "" {
			name = fmt.Sprintf("image-%d", i)
		}

		client := memory.NewClient(
			memory.WithSafeSearch(fixture.SafeSearch),
			memory.WithLabels(fixture.Labels...),
		)

		result, err := moderation.NewImageModerator(log, client, opts...).Moderate(ctx, []byte(fixtureContent))
		if err != nil {
			return failed, fmt.Errorf("image fixture %s: %w", name, err)
		}
		if err := report(name, result, fixture.Expect); err != nil {
			return failed, err
		}
	}

	for i, fixture := range fixtures.Texts {
		name := fixture.Name
		if name == "" {
			name = fmt.Sprintf("text-%d", i)
		}

		client := memory.NewClient(
			memory.WithSentiment(fixture.Sentiment),
			memory.WithCategories(fixture.Categories...),
		)

		text := fixture.Text
		if text == "" {
			text = fixtureContent
		}

		result, err := moderation.NewTextModerator(log, client, opts...).Moderate(ctx, text)
		if err != nil {
			return failed, fmt.Errorf("text fixture %s: %w", name, err)
		}
		if err := report(name, result, fixture.Expect); err != nil {
			return failed, err
		}
	}

	return failed, nil
}
