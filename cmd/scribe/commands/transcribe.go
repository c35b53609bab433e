package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/scribe-flow/internal/ingest"
	"github.com/nguyentantai21042004/scribe-flow/internal/processor"
)

var (
	noDenoise bool
	owner     string
	outDir    string
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <file>...",
	Short: "Transcribe and summarize audio files",
	Long: `Transcribe each audio file, summarize the transcript and write the
results to the output folder. Records are saved when a store is configured.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTranscribe,
}

func init() {
	transcribeCmd.Flags().BoolVar(&noDenoise, "no-denoise", false, "skip noise reduction")
	transcribeCmd.Flags().StringVar(&owner, "owner", "", "owner recorded with the transcription")
	transcribeCmd.Flags().StringVarP(&outDir, "out", "o", "", "output folder (default paths.output)")
	rootCmd.AddCommand(transcribeCmd)
}

type transcribeOutput struct {
	Source     string   `json:"source"`
	RecordID   string   `json:"record_id,omitempty"`
	RequestID  string   `json:"request_id,omitempty"`
	Outcome    string   `json:"outcome,omitempty"`
	Transcript string   `json:"transcript,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Strategy   string   `json:"strategy,omitempty"`
	Files      []string `json:"files,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := a.cfg.Paths.Output
	if outDir != "" {
		dir = outDir
	}
	handler := ingest.New(a.processor, a.exporter, a.store, ingest.Options{
		OutputDir:          dir,
		Owner:              owner,
		SkipNoiseReduction: noDenoise || !a.cfg.NoiseReductionEnabled(),
	}, a.log)

	var outputs []transcribeOutput
	var failed int
	for _, path := range args {
		report, err := handler.HandleFile(ctx, path)
		out := toOutput(path, report, err)
		if err != nil {
			failed++
		}
		if jsonOutput {
			outputs = append(outputs, out)
			continue
		}
		printReport(out)
	}

	if jsonOutput {
		if err := printJSON(outputs); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func toOutput(path string, report *ingest.Report, err error) transcribeOutput {
	out := transcribeOutput{Source: path}
	if err != nil {
		out.Error = processor.UserMessage(err)
	}
	if report == nil {
		return out
	}
	out.RecordID = report.RecordID
	out.Files = report.Files
	if res := report.Result; res != nil {
		out.RequestID = res.CorrelationID
		out.Outcome = res.Transcript.Outcome.String()
		out.Transcript = res.Transcript.Text
		out.Summary = res.Summary.Text
		out.Strategy = res.Summary.Strategy.String()
	}
	return out
}

func printReport(out transcribeOutput) {
	fmt.Printf("== %s\n", out.Source)
	if out.Error != "" {
		fmt.Printf("Error: %s\n\n", out.Error)
		return
	}
	fmt.Printf("\nSummary (%s):\n%s\n", out.Strategy, out.Summary)
	fmt.Printf("\nTranscript:\n%s\n", out.Transcript)
	for _, f := range out.Files {
		fmt.Printf("Wrote %s\n", f)
	}
	if out.RecordID != "" {
		fmt.Printf("Saved record %s\n", out.RecordID)
	}
	fmt.Println()
}

// warnf prints a note on stderr so it never mixes with piped output.
func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
