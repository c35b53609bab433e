package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Recognition backends.
const (
	BackendWhisperAPI = "whisper-api"
	BackendWhisperCPP = "whisper-cpp"
	BackendGemini     = "gemini"
)

// Summarizer backends and scoring functions.
const (
	SummarizerNone   = "none"
	SummarizerGemini = "gemini"
	SummarizerOpenAI = "openai"

	ScoringFrequency = "frequency"
	ScoringTFIDF     = "tfidf"
)

// Store backends.
const (
	StoreNone     = "none"
	StorePostgres = "postgres"
	StoreBadger   = "badger"
)

type Config struct {
	Audio       AudioConfig       `yaml:"audio"`
	Segmenter   SegmenterConfig   `yaml:"segmenter"`
	Recognition RecognitionConfig `yaml:"recognition"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Store       StoreConfig       `yaml:"store"`
	Export      ExportConfig      `yaml:"export"`

	// Secrets never come from the YAML file.
	Secrets Secrets `yaml:"-"`
}

type AudioConfig struct {
	FFmpegPath     string `yaml:"ffmpeg_path"`
	NoiseReduction *bool  `yaml:"noise_reduction"`
}

type SegmenterConfig struct {
	MinSilenceMs    int     `yaml:"min_silence_ms"`
	SilenceThreshDB float64 `yaml:"silence_thresh_db"`
	KeepSilenceMs   int     `yaml:"keep_silence_ms"`
}

type RecognitionConfig struct {
	Backend             string        `yaml:"backend"`
	Model               string        `yaml:"model"`
	Language            string        `yaml:"language"`
	Prompt              string        `yaml:"prompt"`
	CalibrationMs       int           `yaml:"calibration_ms"`
	ChunkTimeout        time.Duration `yaml:"chunk_timeout"`
	MaxConcurrentChunks int           `yaml:"max_concurrent_chunks"`
}

// WhisperConfig configures the local whisper.cpp binary.
type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
	UseGPU     bool   `yaml:"use_gpu"`
}

type SummarizerConfig struct {
	Backend       string  `yaml:"backend"`
	Scoring       string  `yaml:"scoring"`
	Fraction      float64 `yaml:"fraction"`
	MaxChars      int     `yaml:"max_chars"`
	MaxInputWords int     `yaml:"max_input_words"`
	MinLength     int     `yaml:"min_length"`
	MaxLength     int     `yaml:"max_length"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type OpenAIConfig struct {
	BaseURL   string `yaml:"base_url"`
	ChatModel string `yaml:"chat_model"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

type ExportConfig struct {
	Formats []string `yaml:"formats"`
}

// Secrets holds credentials read from the environment.
type Secrets struct {
	OpenAIKey   string
	GeminiKeys  []string
	DatabaseURL string
}

// Load reads the YAML file at path, pulls secrets from the environment and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Secrets = LoadSecrets()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
		},
		Secrets: LoadSecrets(),
	}
	// Cannot fail: both required paths are set and every backend is defaulted.
	_ = cfg.Validate()
	return cfg
}

// LoadSecrets reads OPENAI_API_KEY, GEMINI_API_KEYS (comma separated) and
// DATABASE_URL.
func LoadSecrets() Secrets {
	var keys []string
	for _, k := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return Secrets{
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		GeminiKeys:  keys,
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}
}

// NoiseReductionEnabled reports the default noise reduction toggle.
func (c *Config) NoiseReductionEnabled() bool {
	return c.Audio.NoiseReduction == nil || *c.Audio.NoiseReduction
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Recognition.Backend == "" {
		c.Recognition.Backend = BackendWhisperAPI
	}
	switch c.Recognition.Backend {
	case BackendWhisperAPI, BackendGemini:
	case BackendWhisperCPP:
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	default:
		return fmt.Errorf("recognition.backend %q is not supported", c.Recognition.Backend)
	}

	if c.Summarizer.Backend == "" {
		c.Summarizer.Backend = SummarizerNone
	}
	switch c.Summarizer.Backend {
	case SummarizerNone, SummarizerGemini, SummarizerOpenAI:
	default:
		return fmt.Errorf("summarizer.backend %q is not supported", c.Summarizer.Backend)
	}

	if c.Summarizer.Scoring == "" {
		c.Summarizer.Scoring = ScoringFrequency
	}
	if c.Summarizer.Scoring != ScoringFrequency && c.Summarizer.Scoring != ScoringTFIDF {
		return fmt.Errorf("summarizer.scoring %q is not supported", c.Summarizer.Scoring)
	}
	if c.Summarizer.Fraction < 0 || c.Summarizer.Fraction > 1 {
		return fmt.Errorf("summarizer.fraction must be within (0, 1]")
	}

	if c.Store.Backend == "" {
		c.Store.Backend = StoreNone
	}
	switch c.Store.Backend {
	case StoreNone, StorePostgres:
	case StoreBadger:
		if c.Store.Dir == "" {
			c.Store.Dir = "data/store"
		}
	default:
		return fmt.Errorf("store.backend %q is not supported", c.Store.Backend)
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Audio.FFmpegPath == "" {
		c.Audio.FFmpegPath = "ffmpeg"
	}
	if c.Segmenter.MinSilenceMs == 0 {
		c.Segmenter.MinSilenceMs = 500
	}
	if c.Segmenter.SilenceThreshDB == 0 {
		c.Segmenter.SilenceThreshDB = -40
	}
	if c.Segmenter.KeepSilenceMs == 0 {
		c.Segmenter.KeepSilenceMs = 300
	}
	if c.Recognition.Model == "" {
		c.Recognition.Model = "whisper-1"
	}
	if c.Recognition.CalibrationMs == 0 {
		c.Recognition.CalibrationMs = 200
	}
	if c.Recognition.ChunkTimeout == 0 {
		c.Recognition.ChunkTimeout = 2 * time.Minute
	}
	if c.Recognition.MaxConcurrentChunks == 0 {
		c.Recognition.MaxConcurrentChunks = 4
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Summarizer.Fraction == 0 {
		c.Summarizer.Fraction = 0.3
	}
	if c.Summarizer.MaxChars == 0 {
		c.Summarizer.MaxChars = 2000
	}
	if c.Summarizer.MaxInputWords == 0 {
		c.Summarizer.MaxInputWords = 800
	}
	if c.Summarizer.MinLength == 0 {
		c.Summarizer.MinLength = 30
	}
	if c.Summarizer.MaxLength == 0 {
		c.Summarizer.MaxLength = 130
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.OpenAI.ChatModel == "" {
		c.OpenAI.ChatModel = "gpt-4o-mini"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if len(c.Export.Formats) == 0 {
		c.Export.Formats = []string{"md", "docx"}
	}

	return nil
}
