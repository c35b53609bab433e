package config

import (
	"os"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: false,
		},
		{
			name: "whisper-cpp missing model path",
			config: Config{
				Recognition: RecognitionConfig{Backend: BackendWhisperCPP},
				Whisper: WhisperConfig{
					BinaryPath: "./whisper",
				},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "missing paths",
			config: Config{
				Paths: PathsConfig{},
			},
			wantErr: true,
		},
		{
			name: "unknown scoring",
			config: Config{
				Summarizer: SummarizerConfig{Scoring: "bm25"},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "fraction out of range",
			config: Config{
				Summarizer: SummarizerConfig{Fraction: 1.5},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: true,
		},
		{
			name: "unknown store",
			config: Config{
				Store: StoreConfig{Backend: "mongo"},
				Paths: PathsConfig{
					Input:  "data/input",
					Output: "data/output",
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Input: "in", Output: "out"}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Segmenter.MinSilenceMs != 500 {
		t.Errorf("MinSilenceMs = %v, want %v", cfg.Segmenter.MinSilenceMs, 500)
	}
	if cfg.Segmenter.SilenceThreshDB != -40 {
		t.Errorf("SilenceThreshDB = %v, want %v", cfg.Segmenter.SilenceThreshDB, -40)
	}
	if cfg.Segmenter.KeepSilenceMs != 300 {
		t.Errorf("KeepSilenceMs = %v, want %v", cfg.Segmenter.KeepSilenceMs, 300)
	}
	if cfg.Recognition.CalibrationMs != 200 {
		t.Errorf("CalibrationMs = %v, want %v", cfg.Recognition.CalibrationMs, 200)
	}
	if cfg.Summarizer.MaxInputWords != 800 || cfg.Summarizer.MaxLength != 130 || cfg.Summarizer.MinLength != 30 {
		t.Errorf("summarizer bounds = %+v", cfg.Summarizer)
	}
	if cfg.Summarizer.Scoring != ScoringFrequency {
		t.Errorf("Scoring = %v, want %v", cfg.Summarizer.Scoring, ScoringFrequency)
	}
	if !cfg.NoiseReductionEnabled() {
		t.Error("NoiseReductionEnabled() = false, want true by default")
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
audio:
  noise_reduction: false

recognition:
  backend: "whisper-cpp"
  chunk_timeout: "45s"
  max_concurrent_chunks: 3

whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper"
  language: "en"

summarizer:
  backend: "gemini"
  scoring: "tfidf"
  fraction: 0.25

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "info"
  format: "text"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GEMINI_API_KEYS", "k1, k2,,")

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.ModelPath != "models/test.bin" {
		t.Errorf("ModelPath = %v, want %v", cfg.Whisper.ModelPath, "models/test.bin")
	}
	if cfg.Paths.Input != "data/input" {
		t.Errorf("Input = %v, want %v", cfg.Paths.Input, "data/input")
	}
	if cfg.Recognition.ChunkTimeout != 45*time.Second {
		t.Errorf("ChunkTimeout = %v, want %v", cfg.Recognition.ChunkTimeout, 45*time.Second)
	}
	if cfg.NoiseReductionEnabled() {
		t.Error("NoiseReductionEnabled() = true, want false")
	}
	if cfg.Summarizer.Scoring != ScoringTFIDF {
		t.Errorf("Scoring = %v, want %v", cfg.Summarizer.Scoring, ScoringTFIDF)
	}
	if len(cfg.Secrets.GeminiKeys) != 2 {
		t.Errorf("GeminiKeys = %v, want 2 keys", cfg.Secrets.GeminiKeys)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Default()
	if cfg.Paths.Input != "data/input" || cfg.Paths.Output != "data/output" {
		t.Errorf("Paths = %+v", cfg.Paths)
	}
	if cfg.Recognition.Backend != BackendWhisperAPI {
		t.Errorf("Recognition.Backend = %q, want %q", cfg.Recognition.Backend, BackendWhisperAPI)
	}
	if cfg.Store.Backend != StoreNone {
		t.Errorf("Store.Backend = %q, want %q", cfg.Store.Backend, StoreNone)
	}
	if len(cfg.Export.Formats) != 2 {
		t.Errorf("Export.Formats = %v, want md and docx", cfg.Export.Formats)
	}
	if cfg.Secrets.OpenAIKey != "sk-test" {
		t.Errorf("Secrets.OpenAIKey = %q, want sk-test", cfg.Secrets.OpenAIKey)
	}
}
