package dto

// CreatePostRequest represents the request body for creating a feed post.
type CreatePostRequest struct {
	Content  string `json:"content"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

// UpdatePostRequest represents a partial update of a feed post. Absent
// fields keep their stored values.
type UpdatePostRequest struct {
	Content  *string `json:"content,omitempty"`
	Likes    *int    `json:"likes,omitempty"`
	Dislikes *int    `json:"dislikes,omitempty"`
}
