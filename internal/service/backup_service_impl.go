package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/bordenet/adr/internal/backup"
	"github.com/bordenet/adr/internal/db"
	"github.com/bordenet/adr/internal/repository"
)

type backupService struct {
	projects repository.ProjectRepo
	uow      db.UnitOfWork
}

func NewBackupService(projects repository.ProjectRepo, uow db.UnitOfWork) BackupService {
	return &backupService{projects: projects, uow: uow}
}

func (s *backupService) ExportProject(ctx context.Context, id string) ([]byte, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return backup.EncodeProject(p)
}

func (s *backupService) ExportMarkdown(ctx context.Context, id string) (string, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return backup.ExportMarkdown(p)
}

func (s *backupService) ExportAll(ctx context.Context) ([]byte, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	return backup.EncodeEnvelope(projects)
}

// ImportFile decodes the payload up front and then upserts every record
// inside a single transaction, so a failure partway through writes nothing.
func (s *backupService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	projects, err := backup.DecodeImport(data)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteProjectRepo(tx)
		now := time.Now().UTC()
		for _, p := range projects {
			p.UpdatedAt = now
			_, getErr := txRepo.GetByID(ctx, p.ID)
			switch {
			case getErr == nil:
				if err := txRepo.Update(ctx, p); err != nil {
					return err
				}
				result.Updated++
			case errors.Is(getErr, repository.ErrNotFound):
				if err := txRepo.Create(ctx, p); err != nil {
					return err
				}
				result.Imported++
			default:
				return getErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing backup: %w", err)
	}
	return result, nil
}
