package csvfile

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/reconcile"
)

// Provider ingests workout CSV exports of any recognized dialect.
type Provider struct {
	engine *reconcile.Engine
	log    *slog.Logger
}

// NewProvider creates a CSV ingest provider.
func NewProvider(engine *reconcile.Engine, log *slog.Logger) *Provider {
	return &Provider{engine: engine, log: log}
}

// Ingest tokenizes the file, detects the dialect, extracts canonical rows,
// and merges the grouped workouts into the store.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	rows := Tokenize(string(content))
	if len(rows) < 2 {
		return nil, fmt.Errorf("empty CSV: need a header row and at least one data row")
	}

	headers := rows[0]
	dialect := DetectDialect(headers)
	p.log.Info("csv dialect detected", "dialect", dialect.String(), "rows", len(rows)-1)

	extracted := adapterFor(dialect).extract(headers, rows[1:])
	return p.engine.MergeRows(ctx, extracted)
}
