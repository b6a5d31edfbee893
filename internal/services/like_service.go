package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/skawahara/kotoba-sns-be/internal/models"
)

// LikeServiceProvider defines the interface for like services.
type LikeServiceProvider interface {
	LikePost(userID, postID string) error
	UnlikePost(userID, postID string) error
	GetLikedPosts(userID string) ([]models.Post, error)
	CountForPost(postID string) (int, error)
}

// LikeService provides business logic for liking posts.
type LikeService struct {
	db *sql.DB
}

// NewLikeService creates a new LikeService.
func NewLikeService(db *sql.DB) *LikeService {
	return &LikeService{db: db}
}

// LikePost records that a user liked a post. Liking a post twice leaves a
// single row; a double-submit is not an error.
func (s *LikeService) LikePost(userID, postID string) error {
	var existing string
	err := s.db.QueryRow("SELECT id FROM likes WHERE user_id = ? AND post_id = ?", userID, postID).Scan(&existing)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}

	like := models.Like{
		ID:     uuid.New().String(),
		UserID: userID,
		PostID: postID,
	}
	_, err = s.db.Exec("INSERT INTO likes(id, user_id, post_id) VALUES(?, ?, ?)", like.ID, like.UserID, like.PostID)
	return err
}

// UnlikePost removes a user's like from a post. Removing a like that does not
// exist is a no-op.
func (s *LikeService) UnlikePost(userID, postID string) error {
	_, err := s.db.Exec("DELETE FROM likes WHERE user_id = ? AND post_id = ?", userID, postID)
	return err
}

// GetLikedPosts returns the posts a user has liked, in like order.
func (s *LikeService) GetLikedPosts(userID string) ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.user_id, p.content, p.created_at
		FROM posts p
		INNER JOIN likes l ON l.post_id = p.id
		WHERE l.user_id = ?
		ORDER BY l.created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.UserID, &post.Content, &post.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// CountForPost returns how many likes a post has.
func (s *LikeService) CountForPost(postID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM likes WHERE post_id = ?", postID).Scan(&count)
	return count, err
}
