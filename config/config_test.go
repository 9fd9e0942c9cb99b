package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/code-payments/flipchat-moderation/moderation"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Missing(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/key.json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.EqualValues(t, 20<<20, cfg.Server.MaxBodyBytes)
	require.EqualValues(t, 3, cfg.Google.MaxRetries)
	require.Equal(t, "/tmp/key.json", cfg.Google.CredentialsFile)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Zero(t, cfg.Cache.TTL)

	policies, err := cfg.SignalPolicies()
	require.NoError(t, err)
	require.Equal(t, moderation.DefaultSignalPolicies(), policies)

	require.Equal(t, moderation.DefaultImageTaxonomy(), cfg.ImageTaxonomy())
	require.Equal(t, moderation.DefaultTextTaxonomy(), cfg.TextTaxonomy())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/ignored.json")
	t.Setenv("TEST_S3_ACCESS", "access")
	t.Setenv("TEST_S3_SECRET", "secret")

	path := writeConfig(t, `
server:
  addr: ":9090"
google:
  credentials_file: /etc/moderation/key.json
  backoff: 1s
cache:
  ttl: 10m
s3:
  endpoint: http://127.0.0.1:9000
  bucket: uploads
  access_key_env: TEST_S3_ACCESS
  secret_key_env: TEST_S3_SECRET
logging:
  level: debug
taxonomy:
  image:
    inappropriate: [Spam]
    threshold: 0.8
  text:
    review: [/Finance/]
signals:
  labels: mandatory
  safe_search: optional
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, "/etc/moderation/key.json", cfg.Google.CredentialsFile)
	require.Equal(t, time.Second, cfg.Google.Backoff)
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.Equal(t, "uploads", cfg.S3.Bucket)
	require.Equal(t, "us-east-1", cfg.S3.Region)
	require.Equal(t, "debug", cfg.Logging.Level)

	accessKey, secretKey := cfg.S3Credentials()
	require.Equal(t, "access", accessKey)
	require.Equal(t, "secret", secretKey)

	image := cfg.ImageTaxonomy()
	require.Equal(t, []string{"Spam"}, image.Inappropriate)
	require.Equal(t, moderation.DefaultImageTaxonomy().Review, image.Review)
	require.Equal(t, 0.8, image.Threshold)

	text := cfg.TextTaxonomy()
	require.Equal(t, moderation.DefaultTextTaxonomy().Inappropriate, text.Inappropriate)
	require.Equal(t, []string{"/Finance/"}, text.Review)
	require.Equal(t, moderation.DefaultConfidenceThreshold, text.Threshold)

	policies, err := cfg.SignalPolicies()
	require.NoError(t, err)
	require.Equal(t, moderation.PolicyMandatory, policies[moderation.SignalLabels])
	require.Equal(t, moderation.PolicyOptional, policies[moderation.SignalSafeSearch])
	require.Equal(t, moderation.PolicyMandatory, policies[moderation.SignalSentiment])

	opts, err := cfg.ModerationOptions()
	require.NoError(t, err)
	applied := moderation.ApplyOptions(opts...)
	require.Equal(t, policies, applied.Policies)
	require.Equal(t, image, applied.ImageTaxonomy)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "server: ["))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "signals:\n  labels: sometimes\n"))
	require.ErrorContains(t, err, "unknown signal policy")

	_, err = Load(writeConfig(t, "signals:\n  faces: optional\n"))
	require.ErrorContains(t, err, `unknown signal "faces"`)
}
