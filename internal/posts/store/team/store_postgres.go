package team

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"teamup/internal/posts/models"
	"teamup/internal/storage"
	"teamup/pkg/platform/sentinel"
)

// Postgres persists team posts in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed teams store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the teams table when missing.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS teams (
			id             UUID PRIMARY KEY,
			team_name      TEXT NOT NULL,
			track          TEXT NOT NULL,
			current_size   INT NOT NULL,
			needed_members INT NOT NULL,
			required_roles JSONB NOT NULL,
			project_idea   TEXT NOT NULL DEFAULT '',
			contact        TEXT NOT NULL,
			status         TEXT NOT NULL DEFAULT 'open',
			created_at     TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS teams_contact_idx ON teams (contact);
		CREATE INDEX IF NOT EXISTS teams_created_at_idx ON teams (created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("ensure teams schema: %w", err)
	}
	return nil
}

const teamColumns = `id, team_name, track, current_size, needed_members, required_roles, project_idea, contact, status, created_at`

func (s *Postgres) ListAll(ctx context.Context) ([]*models.TeamPost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+teamColumns+` FROM teams ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()
	return scanTeams(rows)
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.TeamPost, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	post, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find team by id: %w", err)
	}
	return post, nil
}

func (s *Postgres) FindByContactIn(ctx context.Context, contacts []string) ([]*models.TeamPost, error) {
	if len(contacts) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE contact = ANY($1::text[]) ORDER BY created_at DESC, id`,
		storage.TextArray(contacts))
	if err != nil {
		return nil, fmt.Errorf("find teams by contact: %w", err)
	}
	defer rows.Close()
	return scanTeams(rows)
}

func (s *Postgres) Insert(ctx context.Context, post *models.TeamPost) error {
	roles, err := json.Marshal(post.RequiredRoles)
	if err != nil {
		return fmt.Errorf("encode required roles: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO teams (`+teamColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		post.ID, post.TeamName, string(post.Track), post.CurrentSize, post.NeededMembers,
		roles, post.ProjectIdea, post.Contact, string(post.Status), post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, post *models.TeamPost) error {
	roles, err := json.Marshal(post.RequiredRoles)
	if err != nil {
		return fmt.Errorf("encode required roles: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE teams
		SET team_name = $2, track = $3, current_size = $4, needed_members = $5,
		    required_roles = $6, project_idea = $7, status = $8
		WHERE id = $1`,
		post.ID, post.TeamName, string(post.Track), post.CurrentSize,
		post.NeededMembers, roles, post.ProjectIdea, string(post.Status))
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return requireRowAffected(res)
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return requireRowAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (*models.TeamPost, error) {
	var (
		p     models.TeamPost
		roles []byte
	)
	err := row.Scan(&p.ID, &p.TeamName, &p.Track, &p.CurrentSize, &p.NeededMembers,
		&roles, &p.ProjectIdea, &p.Contact, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(roles, &p.RequiredRoles); err != nil {
		return nil, fmt.Errorf("decode required roles: %w", err)
	}
	return &p, nil
}

func scanTeams(rows *sql.Rows) ([]*models.TeamPost, error) {
	var out []*models.TeamPost
	for rows.Next() {
		p, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}
	return out, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
