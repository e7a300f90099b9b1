package minio

import (
	"errors"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds connection settings for New.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Secure    bool
}

// Environment variables read by ConfigFromEnv.
const (
	EnvEndpoint  = "MINIO_ENDPOINT"
	EnvAccessKey = "MINIO_ACCESS_KEY"
	EnvSecretKey = "MINIO_SECRET_KEY"
	EnvRegion    = "MINIO_REGION"
	EnvSecure    = "MINIO_SECURE"
)

// ErrNoEndpoint is returned by New when Config.Endpoint is empty.
var ErrNoEndpoint = errors.New("minio: endpoint not configured")

// ConfigFromEnv reads the MINIO_* variables. MINIO_SECURE accepts
// "1", "true" or "yes".
func ConfigFromEnv() Config {
	return configFromLookup(os.LookupEnv)
}

func configFromLookup(lookup func(string) (string, bool)) Config {
	env := func(k string) string {
		v, _ := lookup(k)
		return strings.TrimSpace(v)
	}
	cfg := Config{
		Endpoint:  env(EnvEndpoint),
		AccessKey: env(EnvAccessKey),
		SecretKey: env(EnvSecretKey),
		Region:    env(EnvRegion),
	}
	switch strings.ToLower(env(EnvSecure)) {
	case "1", "true", "yes":
		cfg.Secure = true
	}
	return cfg
}

// New connects to cfg.Endpoint with static credentials.
func New(cfg Config, bucket, rootPrefix string) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	return NewStore(client, bucket, rootPrefix), nil
}
