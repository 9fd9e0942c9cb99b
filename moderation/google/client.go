package google

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	language "google.golang.org/api/language/v1"
	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"

	"github.com/code-payments/flipchat-moderation/moderation"
)

const (
	featureSafeSearch = "SAFE_SEARCH_DETECTION"
	featureLabels     = "LABEL_DETECTION"

	documentType = "PLAIN_TEXT"

	defaultMaxRetries = 3
	defaultBackoff    = 250 * time.Millisecond
)

type Config struct {
	// CredentialsFile is a service account key file. When empty, application
	// default credentials are used.
	CredentialsFile string

	// Endpoint overrides the API root of both services, e.g. for a proxy or
	// a test server.
	Endpoint string

	// WithoutAuthentication disables credentials entirely.
	WithoutAuthentication bool

	HTTPClient *http.Client

	MaxRetries uint64
	Backoff    time.Duration
}

// Client analyzes images with Cloud Vision and text with Cloud Natural
// Language. It implements both moderation.ImageAnalyzer and
// moderation.TextAnalyzer.
type Client struct {
	log      *zap.Logger
	vision   *vision.Service
	language *language.Service

	maxRetries uint64
	backoff    time.Duration
}

func NewClient(ctx context.Context, log *zap.Logger, cfg Config) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	if cfg.WithoutAuthentication {
		opts = append(opts, option.WithoutAuthentication())
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	visionService, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create vision service")
	}

	languageService, err := language.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create language service")
	}

	c := &Client{
		log:        log,
		vision:     visionService,
		language:   languageService,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
	}
	if c.maxRetries == 0 {
		c.maxRetries = defaultMaxRetries
	}
	if c.backoff <= 0 {
		c.backoff = defaultBackoff
	}
	return c, nil
}

func (c *Client) DetectSafeSearch(ctx context.Context, image []byte) (*moderation.SafeSearch, error) {
	resp, err := c.annotate(ctx, image, featureSafeSearch)
	if err != nil {
		return nil, err
	}

	annotation := resp.SafeSearchAnnotation
	if annotation == nil {
		return nil, errors.New("safe search analysis failed")
	}

	return &moderation.SafeSearch{
		Adult:    moderation.NormalizeLikelihood(annotation.Adult),
		Medical:  moderation.NormalizeLikelihood(annotation.Medical),
		Spoof:    moderation.NormalizeLikelihood(annotation.Spoof),
		Violence: moderation.NormalizeLikelihood(annotation.Violence),
		Racy:     moderation.NormalizeLikelihood(annotation.Racy),
	}, nil
}

func (c *Client) DetectLabels(ctx context.Context, image []byte) ([]moderation.Signal, error) {
	resp, err := c.annotate(ctx, image, featureLabels)
	if err != nil {
		return nil, err
	}

	labels := make([]moderation.Signal, 0, len(resp.LabelAnnotations))
	for _, label := range resp.LabelAnnotations {
		if label == nil {
			continue
		}
		labels = append(labels, moderation.Signal{
			Name:       label.Description,
			Confidence: label.Score,
		})
	}
	return labels, nil
}

func (c *Client) AnalyzeSentiment(ctx context.Context, text string) (*moderation.Sentiment, error) {
	req := &language.AnalyzeSentimentRequest{
		Document: &language.Document{
			Content: text,
			Type:    documentType,
		},
	}

	var resp *language.AnalyzeSentimentResponse
	err := c.do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = c.language.Documents.AnalyzeSentiment(req).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "sentiment request failed")
	}

	sentiment := &moderation.Sentiment{}
	if resp.DocumentSentiment != nil {
		sentiment.Score = resp.DocumentSentiment.Score
		sentiment.Magnitude = resp.DocumentSentiment.Magnitude
	}

	c.log.Debug("Analyzed sentiment", zap.Float64("score", sentiment.Score), zap.Float64("magnitude", sentiment.Magnitude))
	return sentiment, nil
}

func (c *Client) ClassifyText(ctx context.Context, text string) ([]moderation.Signal, error) {
	req := &language.ClassifyTextRequest{
		Document: &language.Document{
			Content: text,
			Type:    documentType,
		},
	}

	var resp *language.ClassifyTextResponse
	err := c.do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = c.language.Documents.ClassifyText(req).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "classify text request failed")
	}

	categories := make([]moderation.Signal, 0, len(resp.Categories))
	for _, category := range resp.Categories {
		if category == nil {
			continue
		}
		categories = append(categories, moderation.Signal{
			Name:       category.Name,
			Confidence: category.Confidence,
		})
	}
	return categories, nil
}

func (c *Client) annotate(ctx context.Context, image []byte, feature string) (*vision.AnnotateImageResponse, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
				Features: []*vision.Feature{{Type: feature}},
			},
		},
	}

	var resp *vision.BatchAnnotateImagesResponse
	err := c.do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = c.vision.Images.Annotate(req).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s request failed", feature)
	}

	if len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return nil, errors.Errorf("%s: no results in response", feature)
	}

	result := resp.Responses[0]
	if result.Error != nil && result.Error.Code != 0 {
		return nil, errors.Errorf("%s: %s", feature, result.Error.Message)
	}
	return result, nil
}

// do retries call on rate limiting and server errors with Fibonacci backoff.
func (c *Client) do(ctx context.Context, call func(context.Context) error) error {
	b := retry.WithMaxRetries(c.maxRetries, retry.NewFibonacci(c.backoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := call(ctx)
		if err != nil && isTransient(err) {
			c.log.Debug("Retrying transient analyzer failure", zap.Error(err))
			return retry.RetryableError(err)
		}
		return err
	})
}

func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return false
}
