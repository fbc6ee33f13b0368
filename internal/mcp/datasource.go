package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/parse"
	"github.com/claude/liftlog/internal/reconcile"
	"github.com/claude/liftlog/internal/secrets"
	"github.com/claude/liftlog/internal/store"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. Local (direct
// store access) and HTTPClient (remote via REST API) both satisfy it.
type DataSource interface {
	QueryWorkouts(ctx context.Context, start, end time.Time) ([]*models.Workout, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error)
	ParseText(ctx context.Context, text string) (*parse.ParsedWorkout, error)
	ImportText(ctx context.Context, text string) (*models.Workout, *ingest.Result, error)
}

// Local serves MCP tools directly from the store and reconcile engine,
// for running the MCP server inside the main daemon.
type Local struct {
	store   store.Store
	engine  *reconcile.Engine
	secrets *secrets.Store
	log     *slog.Logger
}

// NewLocal creates a store-backed DataSource.
func NewLocal(st store.Store, engine *reconcile.Engine, sec *secrets.Store, log *slog.Logger) *Local {
	return &Local{store: st, engine: engine, secrets: sec, log: log}
}

var _ DataSource = (*Local)(nil)

func (l *Local) QueryWorkouts(ctx context.Context, start, end time.Time) ([]*models.Workout, error) {
	return l.store.QueryWorkouts(ctx, start, end)
}

func (l *Local) GetWorkout(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	return l.store.GetWorkout(ctx, id)
}

func (l *Local) ParseText(ctx context.Context, text string) (*parse.ParsedWorkout, error) {
	key, err := l.secrets.Get(secrets.KeyAnthropicAPI)
	if err != nil {
		return nil, err
	}
	return parse.NewService(key, l.log).Parse(ctx, text)
}

func (l *Local) ImportText(ctx context.Context, text string) (*models.Workout, *ingest.Result, error) {
	parsed, err := l.ParseText(ctx, text)
	if err != nil {
		return nil, nil, err
	}
	workout := parse.ToWorkout(parsed, time.Now())
	result, err := l.engine.Merge(ctx, []*models.Workout{workout}, nil)
	if err != nil {
		return nil, nil, err
	}
	return workout, result, nil
}
