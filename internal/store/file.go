package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStore keeps one JSON document per run in a directory
type FileStore struct {
	directory string
	logger    *zap.Logger
}

func NewFileStore(directory string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{directory: directory, logger: logger}, nil
}

func (store *FileStore) Save(_ context.Context, artifact Artifact) error {
	bytes, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	// Renamed into place once fully written
	file := store.path(artifact.RunID)
	temp := file + ".tmp"
	if err := os.WriteFile(temp, bytes, 0o644); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	if err := os.Rename(temp, file); err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	store.logger.Info("run saved", zap.Stringer("run_id", artifact.RunID), zap.String("file", file))
	return nil
}

func (store *FileStore) Get(_ context.Context, id uuid.UUID) (Artifact, error) {
	return store.read(store.path(id))
}

func (store *FileStore) List(_ context.Context) ([]Artifact, error) {
	entries, err := os.ReadDir(store.directory)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if _, err := uuid.Parse(strings.TrimSuffix(entry.Name(), ".json")); err != nil {
			continue
		}
		artifact, err := store.read(filepath.Join(store.directory, entry.Name()))
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, artifact)
	}

	slices.SortStableFunc(artifacts, func(a, b Artifact) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return artifacts, nil
}

func (store *FileStore) Close() error {
	return nil
}

func (store *FileStore) path(id uuid.UUID) string {
	return filepath.Join(store.directory, id.String()+".json")
}

func (store *FileStore) read(file string) (Artifact, error) {
	bytes, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		return Artifact{}, fmt.Errorf("%v: %w", filepath.Base(file), ErrNotFound)
	} else if err != nil {
		return Artifact{}, fmt.Errorf("read run: %w", err)
	}

	var artifact Artifact
	if err := json.Unmarshal(bytes, &artifact); err != nil {
		return Artifact{}, fmt.Errorf("decode %v: %w", filepath.Base(file), err)
	}
	return artifact, nil
}
