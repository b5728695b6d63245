package model

import "time"

// Post is a short feed entry with like/dislike counters.
type Post struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	Dislikes  int       `json:"dislikes"`
	CreatedAt time.Time `json:"createdAt"`
}
