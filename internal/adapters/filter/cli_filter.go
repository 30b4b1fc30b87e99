package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/pkg/snooker"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the CLI filter
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const previewRunes = 500

// CliFilter implements a command-line interface for comment scoring
type CliFilter struct {
	service *core.CommentFilterService
	logger  *zap.Logger
	verbose bool
	format  string
	out     io.Writer
}

// NewCliFilter creates a new CLI filter writing its reports to out
func NewCliFilter(service *core.CommentFilterService, logger *zap.Logger, verbose bool, format string, out io.Writer) (*CliFilter, error) {
	if format == "" {
		format = FormatText
	}
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return &CliFilter{
		service: service,
		logger:  logger,
		verbose: verbose,
		format:  format,
		out:     out,
	}, nil
}

// ProcessComment scores a comment and writes the report
func (f *CliFilter) ProcessComment(ctx context.Context, comment *snooker.Comment) (*core.Analysis, error) {
	f.logger.Debug("Processing comment", zap.Int("body_length", len(comment.Body)))

	startTime := time.Now()
	analysis, err := f.service.AnalyzeComment(ctx, comment)
	if err != nil {
		f.logger.Error("Failed to analyze comment", zap.Error(err))
		return nil, err
	}
	duration := time.Since(startTime)

	switch f.format {
	case FormatJSON:
		enc := json.NewEncoder(f.out)
		enc.SetIndent("", "  ")
		err = enc.Encode(NewAnalysisResponse(analysis))
	case FormatYAML:
		enc := yaml.NewEncoder(f.out)
		enc.SetIndent(2)
		if err = enc.Encode(NewAnalysisResponse(analysis)); err == nil {
			err = enc.Close()
		}
	default:
		err = f.writeText(comment, analysis, duration)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	return analysis, nil
}

func (f *CliFilter) writeText(comment *snooker.Comment, analysis *core.Analysis, duration time.Duration) error {
	w := &errWriter{w: f.out}

	w.printf("\n=== Comment Summary ===\n")
	w.printf("Author: %s\n", orNone(comment.Author))
	w.printf("URL: %s\n", orNone(comment.URL))
	w.printf("Email: %s\n", orNone(comment.Email))
	w.printf("Body length: %d characters\n", utf8.RuneCountInString(comment.Body))

	if f.verbose {
		w.printf("\nBody preview:\n%s\n", preview(comment.Body))
	}

	w.printf("\n=== Rules ===\n")
	for _, d := range analysis.Result.Breakdown {
		if d.Delta == 0 && !f.verbose {
			continue
		}
		w.printf("  %-16s %+d\n", d.Rule, d.Delta)
	}

	w.printf("\n=== Results ===\n")
	w.printf("Score: %d\n", analysis.Result.Score)
	w.printf("Status: %s\n", analysis.Result.Status())
	w.printf("Decision: %s\n", analysis.Decision)
	if analysis.Whitelisted {
		w.printf("Trusted sender: yes\n")
	}
	if analysis.HistoryUsed {
		w.printf("History: loaded from store\n")
	}
	w.printf("Processing ID: %s\n", analysis.ProcessingID)
	w.printf("Processing time: %v\n", duration)

	return w.err
}

// Start is a no-op for the CLI filter
func (f *CliFilter) Start() error {
	return nil
}

// Stop is a no-op for the CLI filter
func (f *CliFilter) Stop() error {
	return nil
}

func orNone(s *string) string {
	if s == nil {
		return "(none)"
	}
	return *s
}

func preview(body string) string {
	if utf8.RuneCountInString(body) <= previewRunes {
		return body
	}
	return string([]rune(body)[:previewRunes]) + "..."
}

// errWriter keeps the first write error and drops everything after it
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
