package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/limaJavier/selfstudy/internal/config"
	"github.com/limaJavier/selfstudy/pkg/model"
)

var ErrNotFound = errors.New("run not found")

// Artifact is a persisted solver run
type Artifact struct {
	RunID      uuid.UUID           `json:"run_id"`
	CreatedAt  time.Time           `json:"created_at"`
	Backend    string              `json:"backend"`
	Objective  int                 `json:"objective"`
	Continuity model.Continuity    `json:"continuity"`
	Study      model.StudySchedule `json:"study_schedule"`
	Schedule   model.Schedule      `json:"complete_schedule"`
}

// NewArtifact stamps a solved result with a fresh run id
func NewArtifact(backend string, result *model.Result) Artifact {
	return Artifact{
		RunID:      uuid.New(),
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
		Backend:    backend,
		Objective:  result.Objective,
		Continuity: result.Report.Continuity,
		Study:      result.Study,
		Schedule:   result.Schedule,
	}
}

// Store archives solver runs
type Store interface {
	Save(ctx context.Context, artifact Artifact) error
	// Get fails with ErrNotFound when the run was never saved
	Get(ctx context.Context, id uuid.UUID) (Artifact, error)
	// List returns every run, oldest first
	List(ctx context.Context) ([]Artifact, error)
	Close() error
}

// New opens the store the configuration selects. Kind none yields a store that keeps nothing
func New(cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Kind {
	case config.StoreFile:
		return NewFileStore(cfg.Path, logger)
	case config.StoreSqlite:
		return OpenSqlite(cfg.Path, logger)
	case config.StoreNone, "":
		return nopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

type nopStore struct{}

func (nopStore) Save(context.Context, Artifact) error { return nil }

func (nopStore) Get(_ context.Context, id uuid.UUID) (Artifact, error) {
	return Artifact{}, fmt.Errorf("%v: %w", id, ErrNotFound)
}

func (nopStore) List(context.Context) ([]Artifact, error) { return nil, nil }

func (nopStore) Close() error { return nil }
