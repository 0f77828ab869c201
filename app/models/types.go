package models

import "time"

// DefaultImageURL is stored for users who do not supply a picture.
const DefaultImageURL = "https://bit.ly/3y8O4Be"

// User is the author of posts.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name" validate:"required,max=20"`
	LastName  string `json:"last_name" validate:"required,max=20"`
	ImageURL  string `json:"image_url" validate:"required"`
}

// Post is a blog post owned by exactly one user.
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title" validate:"required"`
	Content   string    `json:"content" validate:"required"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UserID    int       `json:"user_id" validate:"required,gt=0"`
}

// Tag is a globally unique label that posts can carry.
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required"`
}

// PostTag associates one post with one tag.
type PostTag struct {
	ID     int `json:"id"`
	PostID int `json:"post_id" validate:"required,gt=0"`
	TagID  int `json:"tag_id" validate:"required,gt=0"`
}
