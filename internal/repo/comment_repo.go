package repo

import (
	"context"
	"time"

	dom "github.com/smowhabuth/SKBday/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepo interface {
	Create(ctx context.Context, c dom.Comment) (dom.Comment, error)
	ListByDay(ctx context.Context, day int) ([]dom.CommentWithAuthor, error)
}

type PGCommentRepo struct {
	db *pgxpool.Pool
}

func NewPGCommentRepo(db *pgxpool.Pool) *PGCommentRepo {
	return &PGCommentRepo{db: db}
}

func (r *PGCommentRepo) Create(ctx context.Context, c dom.Comment) (dom.Comment, error) {
	query := `
		INSERT INTO comments (day, text, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, day, text, author_id, created_at`
	var out dom.Comment
	err := r.db.QueryRow(ctx, query, c.Day, c.Text, c.AuthorID).Scan(
		&out.ID, &out.Day, &out.Text, &out.AuthorID, &out.CreatedAt,
	)
	return out, err
}

// ListByDay returns the day's comments newest first, each with its author
// resolved. The join is LEFT so a comment outliving its user still renders.
func (r *PGCommentRepo) ListByDay(ctx context.Context, day int) ([]dom.CommentWithAuthor, error) {
	query := `
		SELECT c.id, c.day, c.text, c.author_id, c.created_at,
		       u.id, u.access_code, u.name, u.is_admin, u.created_at
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.day = $1
		ORDER BY c.created_at DESC, c.id DESC`
	rows, err := r.db.Query(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.CommentWithAuthor
	for rows.Next() {
		var c dom.CommentWithAuthor
		var uID *int64
		var uCode, uName *string
		var uAdmin *bool
		var uCreated *time.Time
		if err := rows.Scan(&c.ID, &c.Day, &c.Text, &c.AuthorID, &c.CreatedAt,
			&uID, &uCode, &uName, &uAdmin, &uCreated); err != nil {
			return nil, err
		}
		if uID != nil {
			c.Author = &dom.User{
				ID:         *uID,
				AccessCode: *uCode,
				Name:       *uName,
				IsAdmin:    *uAdmin,
				CreatedAt:  *uCreated,
			}
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
