package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/summarizer"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file|-]",
	Short: "Summarize a text file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	defer log.Sync()

	text, err := readText(args)
	if err != nil {
		return err
	}

	sum, err := newSummarizer(cfg, log)
	if err != nil {
		return err
	}
	defer sum.Close()

	summary := sum.Summarize(ctx, text)
	if jsonOutput {
		out := map[string]string{
			"summary":  summary.Text,
			"strategy": summary.Strategy.String(),
		}
		if summary.Fallback != nil {
			out["fallback"] = summary.Fallback.Error()
		}
		return printJSON(out)
	}

	if summary.Fallback != nil {
		warnf("Fell back to extractive summary: %v", summary.Fallback)
	}
	warnf("Strategy: %s", summary.Strategy)
	fmt.Println(summary.Text)
	return nil
}

// newSummarizer builds the summarizer alone, so text-only commands do not
// need recognition credentials.
func newSummarizer(cfg *config.Config, log logger.Logger) (summarizer.Summarizer, error) {
	backend, err := summarizer.NewBackend(cfg, log)
	if err != nil {
		warnf("Abstractive summaries unavailable: %v", err)
		backend = nil
	}
	return summarizer.New(backend, summarizer.OptionsFromConfig(cfg.Summarizer), log)
}

func readText(args []string) (string, error) {
	var r io.Reader = os.Stdin
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("open text: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return string(data), nil
}
