package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type PathsConfig struct {
	PromptFile string
	FrameFile  string
	ImagesDir  string
	PagesDir   string
	StagingDir string
	CSVDir     string
}

type GenAIConfig struct {
	APIKey       string
	BaseURL      string
	Model        string
	Size         string
	Quality      string
	PromptPrefix string
	BatchSize    int
	Timeout      time.Duration
}

type RateLimitConfig struct {
	MaxPerWindow int
	Window       time.Duration
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Prefix        string
	UseSSL        bool
	Region        string
	PublicBaseURL string
	Flatten       bool
}

type MetadataConfig struct {
	CategoryID     string
	PinterestBoard string
	LinkBaseURL    string
}

type LoggingConfig struct {
	Level string
}

type Config struct {
	Environment string
	Paths       PathsConfig
	GenAI       GenAIConfig
	RateLimit   RateLimitConfig
	Storage     StorageConfig
	Metadata    MetadataConfig
	Logging     LoggingConfig
}

func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("COLORMYPAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("paths.promptfile", "prompts.json")
	v.SetDefault("paths.framefile", "frame.png")
	v.SetDefault("paths.imagesdir", "images")
	v.SetDefault("paths.pagesdir", "coloring_pages")
	v.SetDefault("paths.stagingdir", "to_upload")
	v.SetDefault("paths.csvdir", "csv")

	// Secret and deployment-specific keys have no meaningful default but
	// must be registered so AutomaticEnv-only values reach Unmarshal.
	v.SetDefault("genai.apikey", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.accesskey", "")
	v.SetDefault("storage.secretkey", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.publicbaseurl", "")

	v.SetDefault("genai.baseurl", "https://api.openai.com/v1")
	v.SetDefault("genai.model", "gpt-image-1")
	v.SetDefault("genai.size", "1024x1536")
	v.SetDefault("genai.quality", "high")
	v.SetDefault("genai.promptprefix", "")
	v.SetDefault("genai.batchsize", 1)
	v.SetDefault("genai.timeout", "5m")

	v.SetDefault("ratelimit.maxperwindow", 5)
	v.SetDefault("ratelimit.window", "60s")

	v.SetDefault("storage.prefix", "coloring-pages")
	v.SetDefault("storage.usessl", true)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.flatten", true)

	v.SetDefault("metadata.categoryid", "")
	v.SetDefault("metadata.pinterestboard", "")
	v.SetDefault("metadata.linkbaseurl", "")

	v.SetDefault("logging.level", "info")
}
