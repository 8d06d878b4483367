package storage

import (
	"context"
	"errors"
	"time"

	"chartspec/internal/graph"
)

// ErrNotFound is returned when no build has the requested id.
var ErrNotFound = errors.New("build not found")

// Build is one compiled chart as kept in the history.
type Build struct {
	ID        string // digest of the chart options
	Chart     string
	CreatedAt time.Time
	Options   []byte // options YAML as given
	Spec      []byte // emitted JSON
	Skipped   int
}

// Store combines build history and reference graph storage.
type Store interface {
	BuildStore
	GraphStore
	Close() error
}

// BuildStore persists compiled builds.
type BuildStore interface {
	// SaveBuild upserts a build by id.
	SaveBuild(ctx context.Context, b Build) error

	// GetBuild retrieves a build by its id.
	GetBuild(ctx context.Context, id string) (Build, error)

	// ListBuilds returns the builds of a chart, newest first. An empty
	// chart name lists every build.
	ListBuilds(ctx context.Context, chart string) ([]Build, error)
}

// GraphStore persists the reference graph of a build.
type GraphStore interface {
	// SaveGraph replaces the stored graph of a build.
	SaveGraph(ctx context.Context, buildID string, g *graph.Graph) error

	// LoadGraph loads the stored graph of a build.
	LoadGraph(ctx context.Context, buildID string) (*graph.Graph, error)
}
