package config

import (
	"os"
	"strings"
	"time"
)

// Config holds runtime configuration for the tool server.
type Config struct {
	ListenAddr string

	// FilesPath selects the storage mode: a local directory,
	// azblob://<container>/<prefix>, or s3://<bucket>/<prefix>.
	FilesPath string
	// ScratchDir overrides where temporary local copies are staged in
	// remote mode. Empty means the system temp directory.
	ScratchDir string

	// Azure Blob credentials, tried in order: connection string,
	// account + key, account + SAS token.
	AzureConnectionString string
	AzureAccount          string
	AzureAccountURL       string
	AzureKey              string
	AzureSASToken         string

	// S3 overrides. Empty values defer to the SDK's default chain.
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	// BodyLimit is an echo body-limit string such as "32M".
	BodyLimit        string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (Config, error) {
	cfg := Config{
		ListenAddr: getenv("LISTEN_ADDR", ":8017"),
		FilesPath:  getenv("EXCEL_FILES_PATH", ""),
		ScratchDir: getenv("EXCEL_TMP_DIR", ""),

		AzureConnectionString: getenv("AZURE_STORAGE_CONNECTION_STRING", ""),
		AzureAccount:          getenv("AZURE_STORAGE_ACCOUNT", ""),
		AzureAccountURL:       getenv("AZURE_STORAGE_ACCOUNT_URL", ""),
		AzureKey:              getenv("AZURE_STORAGE_KEY", ""),
		AzureSASToken:         getenv("AZURE_STORAGE_SAS_TOKEN", ""),

		S3Region:    getenv("S3_REGION", ""),
		S3Endpoint:  getenv("S3_ENDPOINT", ""),
		S3AccessKey: getenv("S3_ACCESS_KEY", ""),
		S3SecretKey: getenv("S3_SECRET_KEY", ""),

		BodyLimit:        getenv("BODY_LIMIT", "32M"),
		HTTPReadTimeout:  getenvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		HTTPWriteTimeout: getenvDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
		HTTPIdleTimeout:  getenvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
