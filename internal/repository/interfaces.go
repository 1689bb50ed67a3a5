package repository

import (
	"context"
	"errors"

	"github.com/bordenet/adr/internal/domain"
)

// ErrNotFound is returned when a project id does not exist in the store.
var ErrNotFound = errors.New("project not found")

// ProjectRepo is the persistence boundary for ADR projects. Put is an upsert
// of the full record including all phase rows, matching the store's
// one-record-per-project model.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}
