package export

import (
	"fmt"

	"github.com/nguyentantai21042004/scribe-flow/internal/logger"
)

// Output formats.
const (
	FormatMarkdown = "md"
	FormatDocx     = "docx"
)

type implExporter struct {
	formats []string
	logger  logger.Logger
}

// New creates an Exporter. An empty format list writes both markdown and
// docx.
func New(formats []string, log logger.Logger) (Exporter, error) {
	if len(formats) == 0 {
		formats = []string{FormatMarkdown, FormatDocx}
	}
	for _, f := range formats {
		if f != FormatMarkdown && f != FormatDocx {
			return nil, fmt.Errorf("unsupported export format %q", f)
		}
	}
	return &implExporter{formats: formats, logger: log}, nil
}
