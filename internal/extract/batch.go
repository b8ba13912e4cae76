package extract

import (
	"context"
	"strings"
	"time"

	"github.com/ardhimansyah/catatduit/internal/model"
)

// ExtractBatch treats each non-empty line of text as an independent
// transaction candidate. Lines without an extractable amount are dropped
// silently; only the aggregate recognized count is surfaced to the owner. An
// empty batch is the caller's signal to report a single extraction failure.
func (e *Extractor) ExtractBatch(ctx context.Context, text string, ref time.Time) (model.PendingBatch, error) {
	var batch model.PendingBatch

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		result, err := e.Extract(ctx, line, ref)
		if err != nil {
			return nil, err
		}
		if !result.Complete() {
			e.logger.Debug("dropping unparseable batch line", "line", line)
			continue
		}
		batch = append(batch, result.Pending())
	}

	return batch, nil
}

// CountLines reports how many non-empty transaction candidates the text
// contains, used to decide between single and batch processing.
func CountLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
