package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sapore/backend/internal/models"
	"github.com/sapore/backend/internal/sorting"
)

var ErrEmptyContent = errors.New("content is required")

// ReviewView is one review with its replies nested one level deep.
type ReviewView struct {
	ID      uint          `json:"id"`
	Author  string        `json:"author"`
	Text    string        `json:"text"`
	Date    string        `json:"date"`
	Likes   int           `json:"likes"`
	IsLiked bool          `json:"is_liked"`
	Replies []*ReviewView `json:"replies"`

	date     time.Time
	parentID *uint
}

// ReviewService handles the review board and the like toggle.
type ReviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new ReviewService instance.
func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// ListReviews returns root reviews newest first, replies attached in posting
// order. When currentUser is set, each review carries whether that user has
// liked it, backed by the review_likes table rather than session state.
func (s *ReviewService) ListReviews(ctx context.Context, currentUser *uuid.UUID) ([]*ReviewView, error) {
	type reviewRow struct {
		models.Review
		Username string
	}
	var rows []reviewRow
	err := s.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("reviews.*, users.username AS username").
		Joins("JOIN users ON users.id = reviews.user_id").
		Order("reviews.date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	liked := make(map[uint]struct{})
	if currentUser != nil {
		var likedIDs []uint
		err := s.db.WithContext(ctx).
			Model(&models.ReviewLike{}).
			Where("user_id = ?", *currentUser).
			Pluck("review_id", &likedIDs).Error
		if err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			liked[id] = struct{}{}
		}
	}

	byID := make(map[uint]*ReviewView, len(rows))
	ordered := make([]*ReviewView, 0, len(rows))
	for _, row := range rows {
		author := row.Username
		if author == "" {
			author = "User"
		}
		_, isLiked := liked[row.Review.ID]
		view := &ReviewView{
			ID:       row.Review.ID,
			Author:   author,
			Text:     row.Content,
			Date:     formatReviewDate(row.Review.Date),
			Likes:    row.LikesCount,
			IsLiked:  isLiked,
			Replies:  []*ReviewView{},
			date:     row.Review.Date,
			parentID: row.ParentID,
		}
		byID[view.ID] = view
		ordered = append(ordered, view)
	}

	// Orphaned replies (parent deleted) surface as roots rather than vanish.
	roots := make([]*ReviewView, 0, len(ordered))
	for _, view := range ordered {
		if view.parentID != nil {
			if parent, ok := byID[*view.parentID]; ok {
				parent.Replies = append(parent.Replies, view)
				continue
			}
		}
		roots = append(roots, view)
	}

	roots = sorting.QuickSort(roots, func(r *ReviewView) float64 {
		return float64(r.date.Unix())
	}, true)

	return roots, nil
}

// CreateReview posts a new review, or a reply when parentID is set.
func (s *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, content string, parentID *uint) (*ReviewView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	review := models.Review{
		UserID:   userID,
		Content:  content,
		Date:     time.Now().UTC(),
		ParentID: parentID,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, err
	}

	var user models.User
	author := "User"
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err == nil {
		author = user.Username
	}

	return &ReviewView{
		ID:      review.ID,
		Author:  author,
		Text:    review.Content,
		Date:    formatReviewDate(review.Date),
		Likes:   0,
		IsLiked: false,
		Replies: []*ReviewView{},
	}, nil
}

// ToggleLike flips the user's like on a review and returns the new state and
// counter. The like row and the denormalized counter move together in one
// transaction.
func (s *ReviewService) ToggleLike(ctx context.Context, userID uuid.UUID, reviewID uint) (bool, int, error) {
	var likedNow bool
	var likes int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			return err
		}

		var existing models.ReviewLike
		err := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			likedNow = false
			likes = review.LikesCount - 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.ReviewLike{ReviewID: reviewID, UserID: userID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			likedNow = true
			likes = review.LikesCount + 1
		default:
			return err
		}

		if likes < 0 {
			likes = 0
		}
		return tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			Update("likes_count", likes).Error
	})
	if err != nil {
		return false, 0, err
	}
	return likedNow, likes, nil
}

func formatReviewDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
