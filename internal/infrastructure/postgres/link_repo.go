package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lynquer/lynquer-api/internal/domain"
	"github.com/lynquer/lynquer-api/internal/repository"
)

const linkColumns = `id, user_id, title, url, visible, "position", created_at, updated_at`

type LinkRepository struct {
	pool *pgxpool.Pool
}

func NewLinkRepository(pool *pgxpool.Pool) *LinkRepository {
	return &LinkRepository{pool: pool}
}

func (r *LinkRepository) Create(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	query := `
		INSERT INTO links (user_id, title, url, visible, "position")
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + linkColumns

	row := r.pool.QueryRow(ctx, query, link.UserID, link.Title, link.URL, link.Visible, link.Position)
	return scanLink(row)
}

func (r *LinkRepository) FindByID(ctx context.Context, id string) (*domain.Link, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+linkColumns+` FROM links WHERE id = $1`, id)
	return scanLink(row)
}

func (r *LinkRepository) ListByUser(ctx context.Context, userID string) ([]domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE user_id = $1 ORDER BY "position" ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	links := []domain.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

func (r *LinkRepository) Update(ctx context.Context, id string, upd repository.LinkUpdate) error {
	query := `
		UPDATE links
		SET    title      = COALESCE($2, title),
		       url        = COALESCE($3, url),
		       updated_at = NOW()
		WHERE  id = $1`

	return r.exec(ctx, query, id, upd.Title, upd.URL)
}

func (r *LinkRepository) SetVisible(ctx context.Context, id string, visible bool) error {
	return r.exec(ctx, `UPDATE links SET visible = $2, updated_at = NOW() WHERE id = $1`, id, visible)
}

func (r *LinkRepository) SetPosition(ctx context.Context, id string, position int) error {
	return r.exec(ctx, `UPDATE links SET "position" = $2, updated_at = NOW() WHERE id = $1`, id, position)
}

func (r *LinkRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, `DELETE FROM links WHERE id = $1`, id)
}

func (r *LinkRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec link query: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}

func scanLink(row pgx.Row) (*domain.Link, error) {
	var l domain.Link
	err := row.Scan(&l.ID, &l.UserID, &l.Title, &l.URL, &l.Visible, &l.Position, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("scan link: %w", err)
	}
	return &l, nil
}
