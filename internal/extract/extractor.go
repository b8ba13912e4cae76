package extract

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/ardhimansyah/catatduit/internal/classify"
	"github.com/ardhimansyah/catatduit/internal/dateparse"
	"github.com/ardhimansyah/catatduit/internal/model"
)

// Result is one extraction outcome. A nil Amount means the extraction is
// incomplete and the caller must start a clarification dialogue; it is never
// treated as zero.
type Result struct {
	Amount      *float64
	Category    string
	Description string
	Date        time.Time
}

// Complete reports whether a usable amount was extracted.
func (r Result) Complete() bool {
	return r.Amount != nil
}

// Pending converts a complete result into a stageable pending transaction.
func (r Result) Pending() model.Pending {
	return model.Pending{
		Date:        r.Date,
		Amount:      *r.Amount,
		Category:    r.Category,
		Description: r.Description,
	}
}

// Extractor invokes the oracle and applies the deterministic fallback chain:
// date resolution via dateparse, type detection via classify.
type Extractor struct {
	oracle Oracle
	logger *slog.Logger
}

// NewExtractor creates an extractor backed by the given oracle.
func NewExtractor(oracle Oracle, logger *slog.Logger) *Extractor {
	return &Extractor{oracle: oracle, logger: logger}
}

// Extract parses one transaction statement against the reference date.
// Oracle and parse failures degrade to an incomplete result rather than an
// error; only context cancellation is surfaced.
func (e *Extractor) Extract(ctx context.Context, text string, ref time.Time) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	result := Result{Date: truncateToDay(ref)}

	raw, err := e.oracle.Generate(ctx, buildPrompt(text, ref))
	if err != nil {
		e.logger.Error("oracle call failed", "error", err)
		return result, nil
	}

	reply, err := decodeReply(raw)
	if err != nil {
		e.logger.Error("unparseable oracle reply", "error", err)
		return result, nil
	}

	result.Date = e.resolveDate(reply, text, ref)

	if reply.Category != nil {
		result.Category = *reply.Category
	}
	if reply.Description != nil {
		result.Description = *reply.Description
	}

	if reply.Amount != nil {
		amount := math.Abs(float64(*reply.Amount))

		txType := model.TransactionType("")
		if reply.TransactionType != nil {
			txType = model.TransactionType(*reply.TransactionType)
		}
		if txType != model.TypeIncome && txType != model.TypeExpense {
			txType = classify.DetectType(text)
		}
		if txType == model.TypeExpense {
			amount = -amount
		}
		result.Amount = &amount
	}

	return result, nil
}

// resolveDate applies the date fallback chain: the oracle's explicit date,
// then the resolver over its time_context hint, then the resolver over the
// full text, then the reference date. time_context never reaches callers.
func (e *Extractor) resolveDate(reply oracleReply, text string, ref time.Time) time.Time {
	if reply.Date != nil {
		if d, err := time.ParseInLocation(model.DateLayout, *reply.Date, time.UTC); err == nil {
			return d
		}
		e.logger.Warn("oracle returned malformed date", "date", *reply.Date)
	}

	if reply.TimeContext != nil {
		if d, ok := dateparse.Resolve(*reply.TimeContext, ref); ok {
			return d
		}
	}

	if d, ok := dateparse.Resolve(text, ref); ok {
		return d
	}

	return truncateToDay(ref)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
