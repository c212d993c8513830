package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"wordvault/internal/lookup"
	"wordvault/internal/middleware"
	"wordvault/internal/model"
)

// ProgressFunc receives a progress report after each processed token.
// percent is integer-rounded processed/total.
type ProgressFunc func(processed, total, percent int)

// ImportService turns raw pasted text into word records: tokenize,
// dedup, resolve each token against the dictionary collaborator, persist
// successes. Lookups run strictly one at a time.
type ImportService interface {
	Run(ctx context.Context, text string, collectionID uint, progress ProgressFunc) (*model.ImportReport, error)
}

type importService struct {
	words     WordService
	provider  lookup.Provider
	newPolicy func() DelayPolicy
}

// NewImportService wires the pipeline. newPolicy is called once per batch so
// each run gets a fresh delay schedule; tests pass func() DelayPolicy
// { return NoDelay{} }.
func NewImportService(words WordService, provider lookup.Provider, newPolicy func() DelayPolicy) ImportService {
	return &importService{
		words:     words,
		provider:  provider,
		newPolicy: newPolicy,
	}
}

// Tokenize splits raw import text on newlines and comma variants (including
// the full-width comma), trims whitespace and drops empties, then removes
// duplicates preserving first-occurrence order. Dedup is case-sensitive:
// "cat" and "Cat" are distinct tokens here, and whether they end up as one
// or two stored records depends on the collaborator's case normalization.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == '，'
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		token := strings.TrimSpace(f)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

func (s *importService) Run(ctx context.Context, text string, collectionID uint, progress ProgressFunc) (*model.ImportReport, error) {
	logger := middleware.GetLogger(ctx)
	tokens := Tokenize(text)

	report := &model.ImportReport{
		Total:  len(tokens),
		Failed: []string{},
	}
	if len(tokens) == 0 {
		report.Summary = "nothing to import"
		return report, nil
	}

	policy := s.newPolicy()
	start := time.Now()

	for i, token := range tokens {
		entry, err := s.provider.Lookup(ctx, token)
		if err != nil {
			// Failures are collected, never aborting the batch: the token
			// stays available for correction and retry.
			logger.Warn("Lookup failed for token", "token", token, "error", err)
			middleware.RecordImportedWord("failed")
			report.Failed = append(report.Failed, token)
		} else {
			_, created, err := s.words.AddWord(ctx, &model.WordDraft{
				Headword:     entry.Headword,
				CollectionID: collectionID,
				Phonetic:     entry.Phonetic,
				Definitions:  entry.Definitions,
				Examples:     entry.Examples,
				Audio:        entry.Audio,
			})
			switch {
			case err != nil:
				logger.Warn("Store rejected looked-up word", "token", token, "error", err)
				middleware.RecordImportedWord("failed")
				report.Failed = append(report.Failed, token)
			case created:
				middleware.RecordImportedWord("imported")
				report.Succeeded++
			default:
				// Dedup no-op; the word was already there, which is success
				// from the user's point of view.
				middleware.RecordImportedWord("duplicate")
				report.Succeeded++
			}
		}

		processed := i + 1
		if progress != nil {
			percent := int(math.Round(float64(processed) / float64(len(tokens)) * 100))
			progress(processed, len(tokens), percent)
		}

		// Pause before the next lookup; skipped after the final token.
		if processed < len(tokens) {
			if err := sleepCtx(ctx, policy.Next(time.Since(start))); err != nil {
				report.Summary = summarize(report)
				return report, err
			}
		}
	}

	report.Summary = summarize(report)
	logger.Info("Import batch finished",
		"total", report.Total,
		"succeeded", report.Succeeded,
		"failed", len(report.Failed),
	)
	return report, nil
}

func summarize(r *model.ImportReport) string {
	return fmt.Sprintf("%d of %d words imported, %d failed", r.Succeeded, r.Total, len(r.Failed))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
