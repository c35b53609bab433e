package recognition

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
	"github.com/nguyentantai21042004/scribe-flow/pkg/gemini"
)

type fakeGemini struct {
	text  string
	err   error
	parts []*genai.Part
}

func (f *fakeGemini) Generate(ctx context.Context, parts []*genai.Part, cfg *genai.GenerateContentConfig) (string, error) {
	f.parts = parts
	return f.text, f.err
}

func (f *fakeGemini) Model() string { return "fake" }

func TestGeminiBackend(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeGemini
		want    string
		wantErr error
	}{
		{"text", &fakeGemini{text: "good morning"}, "good morning", nil},
		{"no speech marker", &fakeGemini{text: "NO_SPEECH."}, "", ErrUnrecognized},
		{"empty response", &fakeGemini{err: gemini.ErrEmptyResponse}, "", ErrUnrecognized},
	}

	path := filepath.Join(t.TempDir(), "chunk.wav")
	if err := audio.WriteWAVFile(path, speech()); err != nil {
		t.Fatalf("WriteWAVFile() error = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewGemini(tt.client, "en")
			got, err := b.Recognize(context.Background(), Request{Path: path})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Recognize() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Recognize() = %q, want %q", got, tt.want)
			}
			if len(tt.client.parts) != 2 || tt.client.parts[0].InlineData == nil {
				t.Errorf("expected inline audio part followed by prompt")
			}
		})
	}
}

func TestGeminiBackendFault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunk.wav")
	if err := audio.WriteWAVFile(path, speech()); err != nil {
		t.Fatalf("WriteWAVFile() error = %v", err)
	}

	b := NewGemini(&fakeGemini{err: errors.New("all API keys exhausted")}, "")
	if _, err := b.Recognize(context.Background(), Request{Path: path}); err == nil || errors.Is(err, ErrUnrecognized) {
		t.Errorf("Recognize() error = %v, want backend fault", err)
	}
}
