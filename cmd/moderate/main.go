package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/code-payments/flipchat-moderation/config"
	"github.com/code-payments/flipchat-moderation/image"
	"github.com/code-payments/flipchat-moderation/moderation"
	"github.com/code-payments/flipchat-moderation/moderation/cache"
	"github.com/code-payments/flipchat-moderation/moderation/google"
	"github.com/code-payments/flipchat-moderation/s3"
	"github.com/code-payments/flipchat-moderation/s3/aws"
	"github.com/code-payments/flipchat-moderation/s3/memory"
	"github.com/code-payments/flipchat-moderation/server"
)

const usage = `usage: moderate [flags] <command> [args]

commands:
  text <text>               moderate a piece of text
  image <path|s3://key>     moderate an image file or stored object
  upload <path> <key>       store an image in the object store
  replay <fixtures.yaml>    replay recorded signals through the engine
  serve                     run the HTTP API
`

func main() {
	configPath := flag.String("config", "moderation.yaml", "Path to config file")
	addrFlag := flag.String("addr", "", "HTTP listen address (overrides config)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		cfg.Server.Addr = *addrFlag
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, log, cfg, flag.Args()); err != nil {
		log.Error("Command failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *zap.Logger, cfg *config.Config, args []string) error {
	opts, err := cfg.ModerationOptions()
	if err != nil {
		return err
	}

	command, args := args[0], args[1:]
	switch command {
	case "replay":
		if len(args) != 1 {
			return errors.New("replay requires a fixtures file")
		}
		fixtures, err := loadFixtures(args[0])
		if err != nil {
			return err
		}
		failed, err := replay(ctx, log, fixtures, os.Stdout, opts...)
		if err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d fixtures did not match their expected recommendation", failed)
		}
		return nil

	case "upload":
		if len(args) != 2 {
			return errors.New("upload requires a file path and an object key")
		}
		objects, err := newObjectStore(cfg)
		if err != nil {
			return err
		}
		if objects == nil {
			return errors.New("s3 bucket is not configured")
		}
		content, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return objects.Upload(ctx, args[1], content)
	}

	client, err := google.NewClient(ctx, log, google.Config{
		CredentialsFile: cfg.Google.CredentialsFile,
		Endpoint:        cfg.Google.Endpoint,
		MaxRetries:      cfg.Google.MaxRetries,
		Backoff:         cfg.Google.Backoff,
	})
	if err != nil {
		return err
	}

	var (
		imageAnalyzer moderation.ImageAnalyzer = client
		textAnalyzer  moderation.TextAnalyzer  = client
	)
	if cfg.Cache.TTL > 0 {
		imageAnalyzer = cache.NewImageAnalyzer(client, cfg.Cache.TTL)
		textAnalyzer = cache.NewTextAnalyzer(client, cfg.Cache.TTL)
	}

	images := moderation.NewImageModerator(log, imageAnalyzer, opts...)
	texts := moderation.NewTextModerator(log, textAnalyzer, opts...)

	switch command {
	case "text":
		if len(args) == 0 {
			return errors.New("text requires the content to moderate")
		}
		result, err := texts.Moderate(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printJSON(moderation.Summarize(result))

	case "image":
		if len(args) != 1 {
			return errors.New("image requires a file path or s3://key")
		}
		content, err := readImage(ctx, cfg, args[0])
		if err != nil {
			return err
		}
		if info, err := image.Inspect(content); err == nil {
			log.Info("Inspected image",
				zap.String("format", info.Format),
				zap.Int("width", info.Width),
				zap.Int("height", info.Height),
			)
		}
		result, err := images.Moderate(ctx, content)
		if err != nil {
			return err
		}
		return printJSON(moderation.Summarize(result))

	case "serve":
		objects, err := newObjectStore(cfg)
		if err != nil {
			return err
		}
		if objects == nil {
			log.Info("No s3 bucket configured, using in-memory object store")
			objects = memory.NewInMemory()
		}
		return serve(ctx, log, cfg, server.NewServer(log, images, texts, objects, cfg.Server.MaxBodyBytes))

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func serve(ctx context.Context, log *zap.Logger, cfg *config.Config, srv *server.Server) error {
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting moderation server", zap.String("addr", cfg.Server.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Shutting down moderation server")
	return httpServer.Shutdown(shutdownCtx)
}

func readImage(ctx context.Context, cfg *config.Config, source string) ([]byte, error) {
	key, ok := strings.CutPrefix(source, "s3://")
	if !ok {
		return os.ReadFile(source)
	}

	objects, err := newObjectStore(cfg)
	if err != nil {
		return nil, err
	}
	if objects == nil {
		return nil, errors.New("s3 bucket is not configured")
	}
	return objects.Download(ctx, key)
}

// newObjectStore returns nil when no bucket is configured.
func newObjectStore(cfg *config.Config) (s3.Store, error) {
	if cfg.S3.Bucket == "" {
		return nil, nil
	}

	accessKey, secretKey := cfg.S3Credentials()
	return aws.NewAWSStore(aws.Config{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
		AccessKey: accessKey,
		SecretKey: secretKey,
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	return zapConfig.Build()
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Println(string(out))
	return err
}
