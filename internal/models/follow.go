package models

import "time"

// Follow is a directed edge in the follow graph: the follower follows the
// followed user. The edge's existence is the sole signal of the relationship.
type Follow struct {
	ID         string    `json:"id"`
	FollowerID string    `json:"followerId"`
	FollowedID string    `json:"followedId"`
	CreatedAt  time.Time `json:"createdAt"`
}
