package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goaltrack/goaltrack/internal/log"
	"github.com/goaltrack/goaltrack/internal/model"
	"github.com/goaltrack/goaltrack/internal/storage"
	"github.com/goaltrack/goaltrack/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// CreateGoal creates a new goal in the repository.
func (r *Repository) CreateGoal(ctx context.Context, g model.Goal) error {
	query := `
		INSERT INTO goals (
			id, title, description, progress, status,
			private, owner_id, workspace_id, parent_id,
			source, timeframe,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		g.ID,
		g.Title,
		g.Description,
		g.Progress,
		g.Status,
		g.Private,
		g.OwnerID,
		g.WorkspaceID,
		g.ParentID,
		g.Source,
		g.Timeframe,
		g.CreatedAt.Unix(),
		g.UpdatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: goals.") {
			return fmt.Errorf("goal already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert goal: %w", err)
	}

	r.logger.Debugf("Created goal in repository: %s", g.ID)
	return nil
}

const goalColumns = `
	id, title, description, progress, status,
	private, owner_id, workspace_id, parent_id,
	source, timeframe,
	created_at, updated_at
`

// GetGoal retrieves a goal by ID.
func (r *Repository) GetGoal(ctx context.Context, id string) (*model.Goal, error) {
	query := `SELECT` + goalColumns + `FROM goals WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	goal, err := r.scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("goal %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query goal: %w", err)
	}

	return &goal, nil
}

// ListGoals returns all goals matching the filter, ordered by creation time.
func (r *Repository) ListGoals(ctx context.Context, filter storage.GoalFilter) ([]model.Goal, error) {
	query := `SELECT` + goalColumns + `FROM goals`

	conds := []string{}
	args := []any{}
	if filter.WorkspaceID != "" {
		conds = append(conds, "workspace_id = ?")
		args = append(args, filter.WorkspaceID)
	}
	if filter.OwnerID != "" {
		conds = append(conds, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.Private != nil {
		conds = append(conds, "private = ?")
		args = append(args, *filter.Private)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		goal, err := r.scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return goals, nil
}

// UpdateGoal updates an existing goal.
func (r *Repository) UpdateGoal(ctx context.Context, g model.Goal) error {
	query := `
		UPDATE goals
		SET
			title = ?,
			description = ?,
			progress = ?,
			status = ?,
			private = ?,
			owner_id = ?,
			workspace_id = ?,
			parent_id = ?,
			source = ?,
			timeframe = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		g.Title,
		g.Description,
		g.Progress,
		g.Status,
		g.Private,
		g.OwnerID,
		g.WorkspaceID,
		g.ParentID,
		g.Source,
		g.Timeframe,
		g.UpdatedAt.Unix(),
		g.ID,
	)
	if err != nil {
		return fmt.Errorf("could not update goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("goal %s: %w", g.ID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated goal in repository: %s", g.ID)
	return nil
}

// DeleteGoal deletes a goal.
func (r *Repository) DeleteGoal(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("goal %s: %w", id, model.ErrNotFound)
	}

	r.logger.Debugf("Deleted goal from repository: %s", id)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanGoal(s scanner) (model.Goal, error) {
	var goal model.Goal
	var createdAt, updatedAt int64

	err := s.Scan(
		&goal.ID,
		&goal.Title,
		&goal.Description,
		&goal.Progress,
		&goal.Status,
		&goal.Private,
		&goal.OwnerID,
		&goal.WorkspaceID,
		&goal.ParentID,
		&goal.Source,
		&goal.Timeframe,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return model.Goal{}, err
	}

	goal.CreatedAt = timeFromUnix(createdAt)
	goal.UpdatedAt = timeFromUnix(updatedAt)

	return goal, nil
}

func timeFromUnix(unix int64) time.Time { return time.Unix(unix, 0).UTC() }
