package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/john/ytchat/innertube"
)

// Config holds the application configuration
type Config struct {
	Client   ClientConfig   `yaml:"client"`
	APIKey   string         `yaml:"api_key"`
	Recorder RecorderConfig `yaml:"recorder"`
	S3       S3Config       `yaml:"s3"`
	Uploader UploaderConfig `yaml:"uploader"`
}

// ClientConfig describes the web client the requests claim to come from
type ClientConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	HL          string `yaml:"hl"`
	GL          string `yaml:"gl"`
	UserAgent   string `yaml:"user_agent"`
	VisitorData string `yaml:"visitor_data"`
	SessionID   string `yaml:"session_id"`
	TimeZone    string `yaml:"time_zone"`
}

// RecorderConfig holds recorder configuration
type RecorderConfig struct {
	OutputDir       string `yaml:"output_dir"`
	RotateMegabytes int    `yaml:"rotate_megabytes"`
	BufferSize      int    `yaml:"buffer_size"`
}

// S3Config holds S3 upload configuration
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	RoleARN         string `yaml:"role_arn"`          // Role assumed through STS
	AccessKeyID     string `yaml:"access_key_id"`     // Static credentials
	SecretAccessKey string `yaml:"secret_access_key"` // Static credentials
	Endpoint        string `yaml:"endpoint"`          // For S3-compatible services
}

// UploaderConfig holds uploader configuration
type UploaderConfig struct {
	DeleteAfterUpload bool `yaml:"delete_after_upload"`
	MaxRetries        int  `yaml:"max_retries"`
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.Recorder.BufferSize < 0 || cfg.Recorder.RotateMegabytes < 0 {
		return nil, fmt.Errorf("recorder.buffer_size and recorder.rotate_megabytes must not be negative")
	}

	return &cfg, nil
}

// Default returns the configuration used when there is no config file:
// environment overrides on top of the defaults.
func Default() *Config {
	var cfg Config
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyEnv() {
	if visitorData := os.Getenv("YTCHAT_VISITOR_DATA"); visitorData != "" {
		c.Client.VisitorData = visitorData
	}
	if sessionID := os.Getenv("YTCHAT_SESSION_ID"); sessionID != "" {
		c.Client.SessionID = sessionID
	}
	if apiKey := os.Getenv("YTCHAT_API_KEY"); apiKey != "" {
		c.APIKey = apiKey
	}
	if roleARN := os.Getenv("AWS_ROLE_ARN"); roleARN != "" {
		c.S3.RoleARN = roleARN
	}
	if keyID := os.Getenv("S3_ACCESS_KEY_ID"); keyID != "" {
		c.S3.AccessKeyID = keyID
	}
	if secretKey := os.Getenv("S3_SECRET_ACCESS_KEY"); secretKey != "" {
		c.S3.SecretAccessKey = secretKey
	}
}

func (c *Config) applyDefaults() {
	if c.Client.Name == "" {
		c.Client.Name = "WEB"
	}
	if c.Client.HL == "" {
		c.Client.HL = "en"
	}
	if c.Client.GL == "" {
		c.Client.GL = "US"
	}
	if c.Recorder.BufferSize == 0 {
		c.Recorder.BufferSize = 100
	}
	if c.Recorder.RotateMegabytes == 0 {
		c.Recorder.RotateMegabytes = 100
	}
	if c.Recorder.OutputDir == "" {
		c.Recorder.OutputDir = "./data"
	}
	if c.Uploader.MaxRetries == 0 {
		c.Uploader.MaxRetries = 3
	}
}

// ValidateClient checks the settings needed to build get_live_chat requests.
func (c *Config) ValidateClient() error {
	if c.Client.Version == "" {
		return fmt.Errorf("client.version is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required (or set YTCHAT_API_KEY env var)")
	}
	return nil
}

// ValidateS3 checks the settings needed to upload recorded files.
func (c *Config) ValidateS3() error {
	if c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required")
	}
	if c.S3.Region == "" {
		return fmt.Errorf("s3.region is required")
	}
	// If using static credentials, both key and secret are required
	if c.S3.AccessKeyID != "" && c.S3.SecretAccessKey == "" {
		return fmt.Errorf("s3.secret_access_key is required when using access_key_id")
	}
	return nil
}

// ClientContext returns the request context for the configured client.
// Fields left empty in the config keep their innertube defaults.
func (c *Config) ClientContext() innertube.Context {
	ctx := innertube.DefaultContext()
	ctx.Client.ClientName = c.Client.Name
	ctx.Client.ClientVersion = c.Client.Version
	ctx.Client.HL = c.Client.HL
	ctx.Client.GL = c.Client.GL
	ctx.Client.VisitorData = c.Client.VisitorData
	ctx.Request.SessionID = c.Client.SessionID
	if c.Client.UserAgent != "" {
		ctx.Client.UserAgent = c.Client.UserAgent
	}
	if c.Client.TimeZone != "" {
		ctx.Client.TimeZone = c.Client.TimeZone
	}
	return ctx
}

// EndpointQuery returns the query string sent with every poll.
func (c *Config) EndpointQuery() innertube.EndpointQuery {
	return innertube.EndpointQuery{Key: c.APIKey, PrettyPrint: false}
}
