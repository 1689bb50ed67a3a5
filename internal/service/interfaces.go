package service

import (
	"context"

	"github.com/bordenet/adr/internal/domain"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	// UpdateDetails re-fetches the persisted record and applies the given
	// metadata onto it, so a stale in-memory copy can never clobber phase
	// state written by a concurrent save.
	UpdateDetails(ctx context.Context, id string, title string, status domain.DecisionStatus, contextText string) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// ImportResult holds the outcome of a backup import.
type ImportResult struct {
	Imported int
	Updated  int
}

type BackupService interface {
	ExportProject(ctx context.Context, id string) ([]byte, error)
	ExportMarkdown(ctx context.Context, id string) (string, error)
	ExportAll(ctx context.Context) ([]byte, error)
	// ImportFile upserts every project in the payload inside one
	// transaction; a malformed payload writes nothing.
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
}
