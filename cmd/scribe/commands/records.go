package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/scribe-flow/internal/config"
	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
	"github.com/nguyentantai21042004/scribe-flow/internal/store"
	"github.com/nguyentantai21042004/scribe-flow/internal/summarizer"
)

var editFile string

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List, show, edit and delete stored transcriptions",
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records, newest first",
	Args:  cobra.NoArgs,
	RunE: withStore(func(ctx context.Context, env *recordsEnv, args []string) error {
		recs, err := env.store.List(ctx, owner)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(recs)
		}
		if len(recs) == 0 {
			fmt.Println("No records.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tOWNER\tCREATED")
		for _, r := range recs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Owner, r.CreatedAt.Local().Format(time.DateTime))
		}
		return tw.Flush()
	}),
}

var recordsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one record",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, env *recordsEnv, args []string) error {
		rec, err := env.store.Get(ctx, args[0])
		if err != nil {
			return err
		}
		return printRecord(rec)
	}),
}

var recordsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a record's transcript and regenerate its summary",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, env *recordsEnv, args []string) error {
		text, err := readText([]string{editFile})
		if err != nil {
			return err
		}
		sum, err := newSummarizer(env.cfg, env.log)
		if err != nil {
			return err
		}
		defer sum.Close()

		rec, err := editTranscript(ctx, env.store, sum, args[0], text)
		if err != nil {
			return err
		}
		return printRecord(rec)
	}),
}

var recordsEditSummaryCmd = &cobra.Command{
	Use:   "edit-summary <id>",
	Short: "Replace a record's summary by hand",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, env *recordsEnv, args []string) error {
		text, err := readText([]string{editFile})
		if err != nil {
			return err
		}
		rec, err := editSummary(ctx, env.store, args[0], text)
		if err != nil {
			return err
		}
		return printRecord(rec)
	}),
}

var recordsResummarizeCmd = &cobra.Command{
	Use:   "resummarize <id>",
	Short: "Regenerate a record's summary from its transcript",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, env *recordsEnv, args []string) error {
		sum, err := newSummarizer(env.cfg, env.log)
		if err != nil {
			return err
		}
		defer sum.Close()

		rec, err := env.store.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if err := resummarize(ctx, env.store, sum, rec); err != nil {
			return err
		}
		return printRecord(rec)
	}),
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, env *recordsEnv, args []string) error {
		if err := env.store.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	}),
}

func init() {
	recordsListCmd.Flags().StringVar(&owner, "owner", "", "only list records of this owner")
	recordsEditCmd.Flags().StringVarP(&editFile, "file", "f", "-", "file holding the corrected transcript, - for stdin")
	recordsEditSummaryCmd.Flags().StringVarP(&editFile, "file", "f", "-", "file holding the new summary, - for stdin")

	recordsCmd.AddCommand(recordsListCmd, recordsShowCmd, recordsEditCmd, recordsEditSummaryCmd, recordsResummarizeCmd, recordsDeleteCmd)
	rootCmd.AddCommand(recordsCmd)
}

type recordsEnv struct {
	cfg   *config.Config
	log   logger.Logger
	store store.Store
}

func withStore(fn func(ctx context.Context, env *recordsEnv, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.Store.Backend == config.StoreNone {
			return fmt.Errorf("no store configured: set store.backend to %q or %q", config.StoreBadger, config.StorePostgres)
		}
		log := newLogger(cfg)
		defer log.Sync()

		st, err := store.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		err = fn(ctx, &recordsEnv{cfg: cfg, log: log, store: st}, args)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%s: %w", strings.Join(args, " "), err)
		}
		return err
	}
}

// editTranscript replaces the transcript of record id and regenerates its
// summary, the way a user correction is handled.
func editTranscript(ctx context.Context, st store.Store, sum summarizer.Summarizer, id, text string) (*store.Record, error) {
	rec, err := st.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Transcript = strings.TrimSpace(text)
	if err := resummarize(ctx, st, sum, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// editSummary overwrites the summary of record id, leaving the transcript
// alone.
func editSummary(ctx context.Context, st store.Store, id, text string) (*store.Record, error) {
	rec, err := st.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.Summary = strings.TrimSpace(text)
	if err := st.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// resummarize regenerates rec.Summary from rec.Transcript and saves it.
func resummarize(ctx context.Context, st store.Store, sum summarizer.Summarizer, rec *store.Record) error {
	summary := sum.Summarize(ctx, rec.Transcript)
	if summary.Fallback != nil {
		warnf("Fell back to extractive summary: %v", summary.Fallback)
	}
	rec.Summary = summary.Text
	return st.Update(ctx, rec)
}

func printRecord(rec *store.Record) error {
	if jsonOutput {
		return printJSON(rec)
	}
	fmt.Printf("ID:      %s\n", rec.ID)
	fmt.Printf("Title:   %s\n", rec.Title)
	if rec.Owner != "" {
		fmt.Printf("Owner:   %s\n", rec.Owner)
	}
	if rec.CorrelationID != "" {
		fmt.Printf("Request: %s\n", rec.CorrelationID)
	}
	fmt.Printf("Created: %s\n", rec.CreatedAt.Local().Format(time.DateTime))
	fmt.Printf("Updated: %s\n", rec.UpdatedAt.Local().Format(time.DateTime))
	fmt.Printf("\nSummary:\n%s\n", rec.Summary)
	fmt.Printf("\nTranscript:\n%s\n", rec.Transcript)
	return nil
}
