package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/scribe-flow/internal/audio"
	"github.com/nguyentantai21042004/scribe-flow/internal/denoise"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/recognition"
	"github.com/nguyentantai21042004/scribe-flow/internal/segmenter"
	"github.com/nguyentantai21042004/scribe-flow/internal/summarizer"
	"github.com/nguyentantai21042004/scribe-flow/internal/transcript"
)

type fakeExecutor struct{}

func (fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return "", errors.New("not available")
}

func (fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return "", errors.New("not available")
}

func (fakeExecutor) Available(name string) bool { return false }

// fakeRecognizer answers with a per-index text. Later chunks answer first
// so completion order is the reverse of chunk order.
type fakeRecognizer struct {
	texts []string
	err   error

	mu       sync.Mutex
	calls    int
	inFlight int
	peak     int
}

func (f *fakeRecognizer) Recognize(ctx context.Context, req recognition.Request) (string, error) {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	f.peak = max(f.peak, f.inFlight)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	time.Sleep(time.Duration(10-req.Index) * 5 * time.Millisecond)
	if f.err != nil {
		return "", f.err
	}
	if req.Index < len(f.texts) {
		return f.texts[req.Index], nil
	}
	return fmt.Sprintf("chunk%d", req.Index), nil
}

func (f *fakeRecognizer) Name() string { return "fake" }
func (f *fakeRecognizer) Close() error { return nil }

type fakeSummarizer struct {
	out   string
	err   error
	calls int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string, minWords, maxWords int) (string, error) {
	f.calls++
	return f.out, f.err
}

func (f *fakeSummarizer) Name() string { return "fake" }
func (f *fakeSummarizer) Close() error { return nil }

type fixture struct {
	proc    Processor
	rec     *fakeRecognizer
	sum     *fakeSummarizer
	tempDir string
}

func newFixture(t *testing.T, rec *fakeRecognizer, sum *fakeSummarizer, concurrency int) *fixture {
	t.Helper()
	log := logger.Nop()
	tempDir := t.TempDir()

	var backend summarizer.Backend
	if sum != nil {
		backend = sum
	}
	s, err := summarizer.New(backend, summarizer.Options{}, log)
	if err != nil {
		t.Fatalf("summarizer.New() error = %v", err)
	}

	proc := New(Deps{
		Normalizer: audio.New("ffmpeg", tempDir, fakeExecutor{}, log),
		Filter:     denoise.New(log),
		Segmenter:  segmenter.New(segmenter.DefaultOptions(), log),
		Recognizer: recognition.New(rec, recognition.Options{Timeout: 5 * time.Second}, log),
		Summarizer: s,
	}, Options{
		TempDir:             tempDir,
		MaxConcurrentChunks: concurrency,
		NoiseReduction:      true,
	}, log)

	return &fixture{proc: proc, rec: rec, sum: sum, tempDir: tempDir}
}

// bursts returns n 500 ms tones separated by 1 s of silence, as WAV bytes.
func bursts(t *testing.T, n int) []byte {
	t.Helper()
	var samples []int16
	for i := 0; i < n; i++ {
		if i > 0 {
			samples = append(samples, make([]int16, 16000)...)
		}
		for j := 0; j < 8000; j++ {
			samples = append(samples, int16(8000*math.Sin(2*math.Pi*440*float64(j)/16000)))
		}
	}
	return wavBytes(t, samples)
}

func wavBytes(t *testing.T, samples []int16) []byte {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "*.wav")
	if err != nil {
		t.Fatal(err)
	}
	if err := audio.EncodeWAV(f, audio.NewBuffer(samples, 16000)); err != nil {
		t.Fatalf("EncodeWAV() error = %v", err)
	}
	f.Close()

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func assertNoScratchLeft(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "scribe-*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("scratch dirs left behind: %v", matches)
	}
}

func TestProcessOrdersChunks(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{"alpha", "beta", "gamma", "delta"}}
	f := newFixture(t, rec, nil, 4)

	res, err := f.proc.Process(context.Background(), Request{
		Title:              "ordering",
		Audio:              bytes.NewReader(bursts(t, 4)),
		SkipNoiseReduction: true,
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if res.Chunks != 4 {
		t.Fatalf("Chunks = %d, want 4", res.Chunks)
	}
	if got, want := res.Transcript.Text, "alpha beta gamma delta"; got != want {
		t.Errorf("Transcript.Text = %q, want %q", got, want)
	}
	if res.Transcript.Outcome != transcript.OutcomeOK {
		t.Errorf("Outcome = %v, want %v", res.Transcript.Outcome, transcript.OutcomeOK)
	}
	if res.Err() != nil {
		t.Errorf("Err() = %v, want nil", res.Err())
	}
	if res.Summary.Strategy != summarizer.StrategyVerbatim {
		t.Errorf("Summary.Strategy = %v, want %v", res.Summary.Strategy, summarizer.StrategyVerbatim)
	}
	if res.CorrelationID == "" {
		t.Error("CorrelationID was not assigned")
	}
	assertNoScratchLeft(t, f.tempDir)
}

func TestProcessBoundsConcurrency(t *testing.T) {
	rec := &fakeRecognizer{}
	f := newFixture(t, rec, nil, 2)

	if _, err := f.proc.Transcribe(context.Background(), Request{Audio: bytes.NewReader(bursts(t, 6))}); err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if rec.calls != 6 {
		t.Errorf("backend calls = %d, want 6", rec.calls)
	}
	if rec.peak > 2 {
		t.Errorf("peak concurrent calls = %d, want <= 2", rec.peak)
	}
}

func TestProcessEmptyInput(t *testing.T) {
	rec := &fakeRecognizer{}
	sum := &fakeSummarizer{out: "never"}
	f := newFixture(t, rec, sum, 2)

	for _, r := range []io.Reader{bytes.NewReader(nil), nil} {
		res, err := f.proc.Process(context.Background(), Request{Audio: r})
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if res.Transcript.Text != "" || res.Summary.Text != "" {
			t.Errorf("Process() = %q / %q, want empty", res.Transcript.Text, res.Summary.Text)
		}
		if res.Transcript.Outcome != transcript.OutcomeEmptyInput {
			t.Errorf("Outcome = %v, want %v", res.Transcript.Outcome, transcript.OutcomeEmptyInput)
		}
		if !errors.Is(res.Err(), audio.ErrEmptyInput) {
			t.Errorf("Err() = %v, want %v", res.Err(), audio.ErrEmptyInput)
		}
	}
	if rec.calls != 0 || sum.calls != 0 {
		t.Errorf("backend calls = %d recognition, %d summarization, want 0", rec.calls, sum.calls)
	}
}

// Digital silence is the only audio settled without a backend call.
func TestProcessSilentAudio(t *testing.T) {
	rec := &fakeRecognizer{}
	f := newFixture(t, rec, nil, 2)

	res, err := f.proc.Process(context.Background(), Request{Audio: bytes.NewReader(wavBytes(t, make([]int16, 32000)))})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Chunks != 1 {
		t.Errorf("Chunks = %d, want 1", res.Chunks)
	}
	if res.Transcript.Text != "" {
		t.Errorf("Transcript.Text = %q, want empty", res.Transcript.Text)
	}
	if !errors.Is(res.Err(), ErrNoSpeech) {
		t.Errorf("Err() = %v, want %v", res.Err(), ErrNoSpeech)
	}
	if rec.calls != 0 {
		t.Errorf("backend calls = %d, want 0", rec.calls)
	}
	assertNoScratchLeft(t, f.tempDir)
}

func TestProcessQuietAudioReachesRecognizer(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{"quiet words"}}
	f := newFixture(t, rec, nil, 2)

	samples := make([]int16, 32000)
	for i := range samples {
		samples[i] = int16(350 * math.Sin(2*math.Pi*400*float64(i)/16000))
	}

	res, err := f.proc.Process(context.Background(), Request{Audio: bytes.NewReader(wavBytes(t, samples))})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	// Below the silence threshold everywhere, so the whole buffer is one chunk.
	if res.Chunks != 1 {
		t.Errorf("Chunks = %d, want 1", res.Chunks)
	}
	if rec.calls != 1 {
		t.Errorf("backend calls = %d, want 1", rec.calls)
	}
	if got, want := res.Transcript.Text, "quiet words"; got != want {
		t.Errorf("Transcript.Text = %q, want %q", got, want)
	}
	if res.Transcript.Outcome != transcript.OutcomeOK {
		t.Errorf("Outcome = %v, want %v", res.Transcript.Outcome, transcript.OutcomeOK)
	}
	assertNoScratchLeft(t, f.tempDir)
}

func TestProcessBackendFailure(t *testing.T) {
	rec := &fakeRecognizer{err: errors.New("503 service unavailable")}
	f := newFixture(t, rec, nil, 2)

	res, err := f.proc.Process(context.Background(), Request{Audio: bytes.NewReader(bursts(t, 3))})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Transcript.Outcome != transcript.OutcomeFailed {
		t.Errorf("Outcome = %v, want %v", res.Transcript.Outcome, transcript.OutcomeFailed)
	}
	if !errors.Is(res.Err(), ErrTranscriptionFailed) {
		t.Errorf("Err() = %v, want %v", res.Err(), ErrTranscriptionFailed)
	}
	if rec.calls != 3 {
		t.Errorf("backend calls = %d, want 3 (no chunk cancels another)", rec.calls)
	}
	assertNoScratchLeft(t, f.tempDir)
}

func TestProcessUndecodableAudio(t *testing.T) {
	f := newFixture(t, &fakeRecognizer{}, nil, 2)

	_, err := f.proc.Process(context.Background(), Request{Audio: strings.NewReader("definitely not audio"), Format: "webm"})
	if !errors.Is(err, audio.ErrDecode) {
		t.Fatalf("Process() error = %v, want %v", err, audio.ErrDecode)
	}
	if !strings.Contains(UserMessage(err), "different audio format") {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}
}

func TestProcessSummaryFallsBackToExtractive(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{
		"The rocket launched at dawn.",
		"Engineers watched the fuel pressure closely.",
		"The second stage reached orbit.",
		"Reporters gathered near the pad.",
		"The satellite deployed on schedule.",
	}}
	sum := &fakeSummarizer{err: errors.New("quota exceeded")}
	f := newFixture(t, rec, sum, 3)

	res, err := f.proc.Process(context.Background(), Request{Audio: bytes.NewReader(bursts(t, 5))})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.Summary.Text == "" {
		t.Fatal("Summary.Text is empty")
	}
	if res.Summary.Strategy != summarizer.StrategyExtractive {
		t.Errorf("Summary.Strategy = %v, want %v", res.Summary.Strategy, summarizer.StrategyExtractive)
	}
	if !errors.Is(res.Summary.Fallback, summarizer.ErrBackendUnavailable) {
		t.Errorf("Summary.Fallback = %v, want %v", res.Summary.Fallback, summarizer.ErrBackendUnavailable)
	}
	if sum.calls != 1 {
		t.Errorf("summarizer backend calls = %d, want 1", sum.calls)
	}
}

func TestProcessWithNoiseReduction(t *testing.T) {
	rec := &fakeRecognizer{texts: []string{"one", "two"}}
	f := newFixture(t, rec, nil, 2)

	res, err := f.proc.Transcribe(context.Background(), Request{Audio: bytes.NewReader(bursts(t, 2))})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if res.Transcript.Text != "one two" {
		t.Errorf("Transcript.Text = %q, want %q", res.Transcript.Text, "one two")
	}
}

func TestProcessCancelled(t *testing.T) {
	f := newFixture(t, &fakeRecognizer{}, nil, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.proc.Transcribe(ctx, Request{Audio: bytes.NewReader(bursts(t, 2))})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Transcribe() error = %v, want %v", err, context.Canceled)
	}
	assertNoScratchLeft(t, f.tempDir)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{audio.ErrEmptyInput, "empty"},
		{fmt.Errorf("normalize: %w", audio.ErrDecode), "different audio format"},
		{ErrNoSpeech, "No speech"},
		{ErrTranscriptionFailed, "unavailable"},
		{context.DeadlineExceeded, "stopped"},
		{errors.New("disk on fire"), "Something went wrong"},
	}

	for _, tt := range tests {
		got := UserMessage(tt.err)
		if !strings.Contains(got, tt.want) {
			t.Errorf("UserMessage(%v) = %q, want it to contain %q", tt.err, got, tt.want)
		}
		if tt.err != nil && strings.Contains(got, tt.err.Error()) {
			t.Errorf("UserMessage(%v) leaks the internal error", tt.err)
		}
	}
}
