package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Log        LogConfig        `yaml:"log"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Search     SearchConfig     `yaml:"search"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Translate  TranslateConfig  `yaml:"translate"`
	Speech     SpeechConfig     `yaml:"speech"`
	Artifact   ArtifactConfig   `yaml:"artifact"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level      string `yaml:"level"`
	FilePath   string `yaml:"filePath"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	Compress   bool   `yaml:"compress"`
}

// PipelineConfig enumerates the knobs shared by the analyze and narrate runs.
type PipelineConfig struct {
	OutputDir      string        `yaml:"outputDir"`
	SourceLanguage string        `yaml:"sourceLanguage"`
	TargetLanguage string        `yaml:"targetLanguage"`
	MaxArticles    int           `yaml:"maxArticles"`
	MaxNarrated    int           `yaml:"maxNarrated"`
	SearchTimeout  time.Duration `yaml:"searchTimeout"`
}

// SearchConfig selects the extraction strategy and its markup selectors.
type SearchConfig struct {
	Strategy        string `yaml:"strategy"`
	URLTemplate     string `yaml:"urlTemplate"`
	UserAgent       string `yaml:"userAgent"`
	ItemSelector    string `yaml:"itemSelector"`
	TitleSelector   string `yaml:"titleSelector"`
	SummarySelector string `yaml:"summarySelector"`
}

// ClassifierConfig points at an optional replacement lexicon.
type ClassifierConfig struct {
	LexiconPath string `yaml:"lexiconPath"`
}

// TranslateConfig selects the translation backend.
type TranslateConfig struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"apiKey"`
	Endpoint    string  `yaml:"endpoint"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// SpeechConfig selects the speech synthesis backend.
type SpeechConfig struct {
	Provider      string        `yaml:"provider"`
	APIKey        string        `yaml:"apiKey"`
	Endpoint      string        `yaml:"endpoint"`
	VoiceLanguage string        `yaml:"voiceLanguage"`
	Timeout       time.Duration `yaml:"timeout"`
}

// ArtifactConfig names the audio file and its optional bucket mirror.
type ArtifactConfig struct {
	Name   string       `yaml:"name"`
	Mirror MirrorConfig `yaml:"mirror"`
}

// MirrorConfig contains S3 compatible bucket settings.
type MirrorConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
}

// Translation and speech providers.
const (
	TranslateGTX     = "gtx"
	TranslateGoogle  = "google"
	TranslateGemini  = "gemini"
	TranslateChatGPT = "chatgpt"
	SpeechGTTS       = "gtts"
	SpeechGoogle     = "google"
)

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	setBool(&cfg.HTTP.RateLimit.Enabled, "HTTP_RATE_LIMIT_ENABLED")
	setInt(&cfg.HTTP.RateLimit.RequestsPerMinute, "HTTP_RATE_LIMIT_RPM")
	setInt(&cfg.HTTP.RateLimit.Burst, "HTTP_RATE_LIMIT_BURST")

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.FilePath, "LOG_FILE")

	setString(&cfg.Pipeline.OutputDir, "PIPELINE_OUTPUT_DIR")
	setString(&cfg.Pipeline.SourceLanguage, "PIPELINE_SOURCE_LANGUAGE")
	setString(&cfg.Pipeline.TargetLanguage, "PIPELINE_TARGET_LANGUAGE")
	setInt(&cfg.Pipeline.MaxArticles, "PIPELINE_MAX_ARTICLES")
	setInt(&cfg.Pipeline.MaxNarrated, "PIPELINE_MAX_NARRATED")
	setDuration(&cfg.Pipeline.SearchTimeout, "PIPELINE_SEARCH_TIMEOUT")

	setString(&cfg.Search.Strategy, "SEARCH_STRATEGY")
	setString(&cfg.Search.URLTemplate, "SEARCH_URL_TEMPLATE")
	setString(&cfg.Search.UserAgent, "SEARCH_USER_AGENT")

	setString(&cfg.Classifier.LexiconPath, "CLASSIFIER_LEXICON_PATH")

	setString(&cfg.Translate.Provider, "TRANSLATE_PROVIDER")
	setString(&cfg.Translate.APIKey, "TRANSLATE_API_KEY")
	setString(&cfg.Translate.Endpoint, "TRANSLATE_ENDPOINT")
	setString(&cfg.Translate.Model, "TRANSLATE_MODEL")
	if v := os.Getenv("TRANSLATE_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.Translate.Temperature = float32(parsed)
		}
	}

	setString(&cfg.Speech.Provider, "SPEECH_PROVIDER")
	setString(&cfg.Speech.APIKey, "SPEECH_API_KEY")
	setString(&cfg.Speech.Endpoint, "SPEECH_ENDPOINT")
	setString(&cfg.Speech.VoiceLanguage, "SPEECH_VOICE_LANGUAGE")
	setDuration(&cfg.Speech.Timeout, "SPEECH_TIMEOUT")

	setString(&cfg.Artifact.Name, "ARTIFACT_NAME")
	setBool(&cfg.Artifact.Mirror.Enabled, "ARTIFACT_MIRROR_ENABLED")
	setString(&cfg.Artifact.Mirror.Endpoint, "ARTIFACT_MIRROR_ENDPOINT")
	setString(&cfg.Artifact.Mirror.AccessKey, "ARTIFACT_MIRROR_ACCESS_KEY")
	setString(&cfg.Artifact.Mirror.SecretKey, "ARTIFACT_MIRROR_SECRET_KEY")
	setString(&cfg.Artifact.Mirror.Bucket, "ARTIFACT_MIRROR_BUCKET")
	setString(&cfg.Artifact.Mirror.Region, "ARTIFACT_MIRROR_REGION")
	setString(&cfg.Artifact.Mirror.Prefix, "ARTIFACT_MIRROR_PREFIX")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 90 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
			},
		},
		Log: LogConfig{
			Level: "info",
		},
		Pipeline: PipelineConfig{
			OutputDir:      "/tmp",
			SourceLanguage: "en",
			TargetLanguage: "hi",
			MaxArticles:    10,
			MaxNarrated:    3,
			SearchTimeout:  10 * time.Second,
		},
		Search: SearchConfig{
			Strategy:        "html",
			URLTemplate:     "https://www.bing.com/news/search?q={company}",
			UserAgent:       "Mozilla/5.0",
			ItemSelector:    "div.news-card",
			TitleSelector:   "a.title",
			SummarySelector: "div.snippet",
		},
		Translate: TranslateConfig{
			Provider:    TranslateGTX,
			Temperature: 0.2,
		},
		Speech: SpeechConfig{
			Provider:      SpeechGTTS,
			VoiceLanguage: "hi-IN",
		},
		Artifact: ArtifactConfig{
			Name: "output.mp3",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.Pipeline.OutputDir) == "" {
		return errors.New("pipeline.outputDir cannot be empty")
	}
	if strings.TrimSpace(c.Pipeline.TargetLanguage) == "" {
		return errors.New("pipeline.targetLanguage cannot be empty")
	}
	if c.Pipeline.MaxArticles <= 0 {
		return errors.New("pipeline.maxArticles must be positive")
	}
	if c.Pipeline.MaxNarrated <= 0 {
		return errors.New("pipeline.maxNarrated must be positive")
	}
	if c.Pipeline.SearchTimeout <= 0 {
		return errors.New("pipeline.searchTimeout must be positive")
	}
	c.Search.Strategy = strings.ToLower(strings.TrimSpace(c.Search.Strategy))
	c.Translate.Provider = strings.ToLower(strings.TrimSpace(c.Translate.Provider))
	c.Speech.Provider = strings.ToLower(strings.TrimSpace(c.Speech.Provider))
	if c.Speech.Timeout < 0 {
		return errors.New("speech.timeout cannot be negative")
	}
	switch c.Search.Strategy {
	case "html", "rss":
	default:
		return fmt.Errorf("search.strategy %q is not supported", c.Search.Strategy)
	}
	if !strings.Contains(c.Search.URLTemplate, "{company}") {
		return errors.New("search.urlTemplate must contain {company}")
	}
	switch c.Translate.Provider {
	case TranslateGTX, TranslateGoogle, TranslateGemini, TranslateChatGPT:
	default:
		return fmt.Errorf("translate.provider %q is not supported", c.Translate.Provider)
	}
	switch c.Speech.Provider {
	case SpeechGTTS, SpeechGoogle:
	default:
		return fmt.Errorf("speech.provider %q is not supported", c.Speech.Provider)
	}
	if strings.TrimSpace(c.Artifact.Name) == "" || strings.ContainsAny(c.Artifact.Name, `/\`) {
		return errors.New("artifact.name must be a plain file name")
	}
	if c.Artifact.Mirror.Enabled {
		if strings.TrimSpace(c.Artifact.Mirror.Endpoint) == "" {
			return errors.New("artifact.mirror.endpoint cannot be empty when the mirror is enabled")
		}
		if strings.TrimSpace(c.Artifact.Mirror.Bucket) == "" {
			return errors.New("artifact.mirror.bucket cannot be empty when the mirror is enabled")
		}
	}
	return nil
}
