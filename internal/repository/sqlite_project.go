package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bordenet/adr/internal/db"
	"github.com/bordenet/adr/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo over a projects table plus a
// project_phases table holding one row per touched phase.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo. The DBTX may be a
// *sql.DB or, for transactional imports, a *sql.Tx.
func NewSQLiteProjectRepo(dbtx db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: dbtx}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, title, status, context, phase, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Title,
		string(p.Status),
		p.Context,
		p.Phase,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return r.upsertPhases(ctx, p)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT id, title, status, context, phase, created_at, updated_at
		FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := r.scanProject(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadPhases(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT id, title, status, context, phase, created_at, updated_at
		FROM projects ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := r.scanProjectFromRows(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}

	for _, p := range projects {
		if err := r.loadPhases(ctx, p); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET title = ?, status = ?, context = ?, phase = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Title,
		string(p.Status),
		p.Context,
		p.Phase,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return r.upsertPhases(ctx, p)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM projects WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteProjectRepo) upsertPhases(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO project_phases (project_id, phase, prompt, response, completed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(project_id, phase) DO UPDATE SET
			prompt = excluded.prompt,
			response = excluded.response,
			completed = excluded.completed`
	for phase := 1; phase <= domain.PhaseCount; phase++ {
		rec, ok := p.Phases[phase]
		if !ok {
			continue
		}
		_, err := r.db.ExecContext(ctx, query, p.ID, phase, rec.Prompt, rec.Response, boolToInt(rec.Completed))
		if err != nil {
			return fmt.Errorf("upserting phase %d: %w", phase, err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) loadPhases(ctx context.Context, p *domain.Project) error {
	query := `SELECT phase, prompt, response, completed FROM project_phases
		WHERE project_id = ? ORDER BY phase`
	rows, err := r.db.QueryContext(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("loading phases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var phase, completed int
		var rec domain.PhaseRecord
		if err := rows.Scan(&phase, &rec.Prompt, &rec.Response, &completed); err != nil {
			return fmt.Errorf("scanning phase row: %w", err)
		}
		rec.Completed = intToBool(completed)
		p.SetPhaseRecord(phase, rec)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating phase rows: %w", err)
	}
	return nil
}

// scanProject scans a single project row from a *sql.Row.
func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string

	err := row.Scan(&p.ID, &p.Title, &statusStr, &p.Context, &p.Phase, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return finishProjectScan(&p, statusStr, createdAtStr, updatedAtStr)
}

// scanProjectFromRows scans a single project row from *sql.Rows.
func (r *SQLiteProjectRepo) scanProjectFromRows(rows *sql.Rows) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string

	err := rows.Scan(&p.ID, &p.Title, &statusStr, &p.Context, &p.Phase, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}
	return finishProjectScan(&p, statusStr, createdAtStr, updatedAtStr)
}

func finishProjectScan(p *domain.Project, statusStr, createdAtStr, updatedAtStr string) (*domain.Project, error) {
	p.Status = domain.DecisionStatus(statusStr)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return p, nil
}
