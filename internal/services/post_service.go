package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/skawahara/kotoba-sns-be/internal/models"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	GetPostsByUser(userID string) ([]models.Post, error)
	GetRecentPosts(limit int) ([]models.Post, error)
	GetPostByID(id string) (models.Post, error)
	GetOwnedPost(id, userID string) (models.Post, error)
	CreatePost(userID, content string) (models.Post, error)
	UpdatePost(id, content string) (models.Post, error)
	DeletePost(id string) error
}

// PostService provides business logic for short text posts.
type PostService struct {
	db *sql.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

// GetPostsByUser returns all posts owned by a user, in insertion order.
func (s *PostService) GetPostsByUser(userID string) ([]models.Post, error) {
	return s.queryPosts("SELECT id, user_id, content, created_at FROM posts WHERE user_id = ? ORDER BY created_at", userID)
}

// GetRecentPosts returns the newest posts across all users, for the public
// landing page.
func (s *PostService) GetRecentPosts(limit int) ([]models.Post, error) {
	return s.queryPosts("SELECT id, user_id, content, created_at FROM posts ORDER BY created_at DESC LIMIT ?", limit)
}

func (s *PostService) queryPosts(query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.Query(query, args...)
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

// GetPostByID retrieves a single post by its ID, regardless of owner.
func (s *PostService) GetPostByID(id string) (models.Post, error) {
	var post models.Post
	row := s.db.QueryRow("SELECT id, user_id, content, created_at FROM posts WHERE id = ?", id)
	err := row.Scan(&post.ID, &post.UserID, &post.Content, &post.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}

// GetOwnedPost is the ownership guard for post mutations, same shape as the
// word guard: unscoped lookup, then owner comparison.
func (s *PostService) GetOwnedPost(id, userID string) (models.Post, error) {
	post, err := s.GetPostByID(id)
	if err != nil {
		return models.Post{}, err
	}
	if post.UserID != userID {
		return models.Post{}, ErrNotOwned
	}
	return post, nil
}

// CreatePost persists a new post owned by the given user.
func (s *PostService) CreatePost(userID, content string) (models.Post, error) {
	post := models.Post{
		ID:      uuid.New().String(),
		UserID:  userID,
		Content: content,
	}

	stmt, err := s.db.Prepare("INSERT INTO posts(id, user_id, content) VALUES(?, ?, ?)")
	if err != nil {
		return models.Post{}, err
	}
	defer stmt.Close()

	if _, err = stmt.Exec(post.ID, post.UserID, post.Content); err != nil {
		return models.Post{}, err
	}
	return s.GetPostByID(post.ID)
}

// UpdatePost replaces a post's content. The ownership guard has already run.
func (s *PostService) UpdatePost(id, content string) (models.Post, error) {
	if _, err := s.db.Exec("UPDATE posts SET content = ? WHERE id = ?", content, id); err != nil {
		return models.Post{}, err
	}
	return s.GetPostByID(id)
}

// DeletePost removes a post row and any likes attached to it.
func (s *PostService) DeletePost(id string) error {
	if _, err := s.db.Exec("DELETE FROM likes WHERE post_id = ?", id); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM posts WHERE id = ?", id)
	return err
}
