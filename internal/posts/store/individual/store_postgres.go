package individual

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

// Postgres persists individual posts in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed individuals store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the individuals table when missing.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS individuals (
			id          UUID PRIMARY KEY,
			name        TEXT NOT NULL,
			track       TEXT NOT NULL,
			roles       JSONB NOT NULL,
			skills      TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			phone       TEXT NOT NULL,
			language    TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT 'open',
			created_at  TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS individuals_phone_idx ON individuals (phone);
		CREATE INDEX IF NOT EXISTS individuals_created_at_idx ON individuals (created_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("ensure individuals schema: %w", err)
	}
	return nil
}

const individualColumns = `id, name, track, roles, skills, description, phone, language, status, created_at`

func (s *Postgres) ListAll(ctx context.Context) ([]*models.IndividualPost, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+individualColumns+` FROM individuals ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list individuals: %w", err)
	}
	defer rows.Close()
	return scanIndividuals(rows)
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.IndividualPost, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+individualColumns+` FROM individuals WHERE id = $1`, id)
	post, err := scanIndividual(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find individual by id: %w", err)
	}
	return post, nil
}

func (s *Postgres) FindByPhoneIn(ctx context.Context, phones []string) ([]*models.IndividualPost, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+individualColumns+` FROM individuals WHERE phone = ANY($1::text[]) ORDER BY created_at DESC, id`,
		storage.TextArray(phones))
	if err != nil {
		return nil, fmt.Errorf("find individuals by phone: %w", err)
	}
	defer rows.Close()
	return scanIndividuals(rows)
}

func (s *Postgres) Insert(ctx context.Context, post *models.IndividualPost) error {
	roles, err := json.Marshal(post.Roles)
	if err != nil {
		return fmt.Errorf("encode roles: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO individuals (`+individualColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		post.ID, post.Name, string(post.Track), roles, post.Skills,
		post.Description, post.Phone, post.Language, string(post.Status), post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert individual: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, post *models.IndividualPost) error {
	roles, err := json.Marshal(post.Roles)
	if err != nil {
		return fmt.Errorf("encode roles: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE individuals
		SET name = $2, track = $3, roles = $4, skills = $5, description = $6,
		    language = $7, status = $8
		WHERE id = $1`,
		post.ID, post.Name, string(post.Track), roles, post.Skills,
		post.Description, post.Language, string(post.Status))
	if err != nil {
		return fmt.Errorf("update individual: %w", err)
	}
	return requireRowAffected(res)
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM individuals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete individual: %w", err)
	}
	return requireRowAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIndividual(row rowScanner) (*models.IndividualPost, error) {
	var (
		p     models.IndividualPost
		roles []byte
	)
	err := row.Scan(&p.ID, &p.Name, &p.Track, &roles, &p.Skills,
		&p.Description, &p.Phone, &p.Language, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(roles, &p.Roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return &p, nil
}

func scanIndividuals(rows *sql.Rows) ([]*models.IndividualPost, error) {
	var out []*models.IndividualPost
	for rows.Next() {
		p, err := scanIndividual(rows)
		if err != nil {
			return nil, fmt.Errorf("scan individual: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate individuals: %w", err)
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
