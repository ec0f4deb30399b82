package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/smowhabuth/SKBday/internal/cache"
	dom "github.com/smowhabuth/SKBday/internal/domain"
	"github.com/smowhabuth/SKBday/internal/repo"

	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("not found")

type CommentService struct {
	repo  repo.CommentRepo
	cache *cache.CommentCache
	sf    singleflight.Group
}

// NewCommentService creates a CommentService. If c is nil, caching is disabled.
func NewCommentService(r repo.CommentRepo, c *cache.CommentCache) *CommentService {
	return &CommentService{repo: r, cache: c}
}

// Post persists a comment by author for the submitted day. The day value is
// trusted as-is here; range checking belongs to the view path only.
func (s *CommentService) Post(ctx context.Context, authorID int64, day int, text string) (dom.Comment, error) {
	c, err := s.repo.Create(ctx, dom.Comment{
		Day:      day,
		Text:     text,
		AuthorID: authorID,
	})
	if err != nil {
		return dom.Comment{}, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateDay(ctx, day)
	}
	return c, nil
}

// ListByDay returns the day's comments newest first with authors resolved.
func (s *CommentService) ListByDay(ctx context.Context, day int) ([]dom.CommentWithAuthor, error) {
	if s.cache != nil {
		key := "day:" + strconv.Itoa(day)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetDay(ctx, day); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListByDay(ctx, day)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetDay(ctx, day, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.CommentWithAuthor), nil
	}
	return s.repo.ListByDay(ctx, day)
}
