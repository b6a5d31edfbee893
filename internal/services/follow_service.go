package services

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/skawahara/kotoba-sns-be/internal/models"
)

// FollowServiceProvider defines the interface for follow graph services.
type FollowServiceProvider interface {
	Follow(followerID, followedID string) error
	Unfollow(followerID, followedID string) error
	IsFollowing(followerID, followedID string) (bool, error)
	GetFollowing(userID string) ([]models.User, error)
	GetFollowers(userID string) ([]models.User, error)
}

// FollowService provides business logic for the directed follow graph.
type FollowService struct {
	db *sql.DB
}

// NewFollowService creates a new FollowService.
func NewFollowService(db *sql.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow creates the follower -> followed edge. An edge that already exists
// is left alone, so a (follower, followed) pair never has more than one row.
func (s *FollowService) Follow(followerID, followedID string) error {
	exists, err := s.IsFollowing(followerID, followedID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	edge := models.Follow{
		ID:         uuid.New().String(),
		FollowerID: followerID,
		FollowedID: followedID,
	}
	_, err = s.db.Exec("INSERT INTO follows(id, follower_id, followed_id) VALUES(?, ?, ?)",
		edge.ID, edge.FollowerID, edge.FollowedID)
	return err
}

// Unfollow removes the follower -> followed edge. A missing edge is a no-op;
// the store stays untouched and no error is reported.
func (s *FollowService) Unfollow(followerID, followedID string) error {
	_, err := s.db.Exec("DELETE FROM follows WHERE follower_id = ? AND followed_id = ?", followerID, followedID)
	return err
}

// IsFollowing reports whether the follower -> followed edge exists.
func (s *FollowService) IsFollowing(followerID, followedID string) (bool, error) {
	var id string
	err := s.db.QueryRow("SELECT id FROM follows WHERE follower_id = ? AND followed_id = ?", followerID, followedID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetFollowing returns the users the given user follows (outbound neighbors).
// A user with no outbound edges gets an empty slice.
func (s *FollowService) GetFollowing(userID string) ([]models.User, error) {
	return s.queryNeighbors(`
		SELECT u.id, u.name, u.email, u.created_at
		FROM users u
		INNER JOIN follows f ON f.followed_id = u.id
		WHERE f.follower_id = ?
		ORDER BY f.created_at`, userID)
}

// GetFollowers returns the users following the given user (inbound neighbors).
func (s *FollowService) GetFollowers(userID string) ([]models.User, error) {
	return s.queryNeighbors(`
		SELECT u.id, u.name, u.email, u.created_at
		FROM users u
		INNER JOIN follows f ON f.follower_id = u.id
		WHERE f.followed_id = ?
		ORDER BY f.created_at`, userID)
}

func (s *FollowService) queryNeighbors(query, userID string) ([]models.User, error) {
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
