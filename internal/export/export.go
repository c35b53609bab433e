package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func (e *implExporter) Export(ctx context.Context, dir, name string, doc Document) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	for _, format := range e.formats {
		path := filepath.Join(dir, name+"."+format)

		var err error
		switch format {
		case FormatMarkdown:
			err = os.WriteFile(path, []byte(Markdown(doc)), 0644)
		case FormatDocx:
			err = markdownToDocx(doc.Title, Markdown(doc), path)
		}
		if err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}

		e.logger.Info(ctx, "Exported %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

// Markdown renders doc with the summary first and the full transcript after.
func Markdown(doc Document) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", doc.Title)
	if !doc.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "_%s_\n\n", doc.CreatedAt.Format("2006-01-02 15:04"))
	}
	if doc.Duration > 0 {
		fmt.Fprintf(&sb, "- **Duration:** %s\n", doc.Duration.Round(time.Second))
	}
	if doc.Strategy != "" {
		fmt.Fprintf(&sb, "- **Summary:** %s\n", doc.Strategy)
	}
	if doc.CorrelationID != "" {
		fmt.Fprintf(&sb, "- **Request:** %s\n", doc.CorrelationID)
	}

	sb.WriteString("\n## Summary\n\n")
	sb.WriteString(orPlaceholder(doc.Summary, "No summary available."))
	sb.WriteString("\n\n## Transcript\n\n")
	sb.WriteString(orPlaceholder(doc.Transcript, "No speech was recognized."))
	sb.WriteString("\n")
	return sb.String()
}

func orPlaceholder(s, placeholder string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "_" + placeholder + "_"
	}
	return s
}
