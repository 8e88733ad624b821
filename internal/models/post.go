package models

import "time"

// Post categories the campus feed understands.
const (
	CategoryIdeaHub  = "IdeaHub"
	CategoryAcademic = "Academic"
	CategoryEvents   = "Events"
	CategoryGeneral  = "General"
)

// PostCategories lists the valid categories in display order.
var PostCategories = []string{CategoryIdeaHub, CategoryAcademic, CategoryEvents, CategoryGeneral}

func IsValidCategory(category string) bool {
	for _, c := range PostCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Post represents a feed post (PostgreSQL)
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category" gorm:"type:varchar(20);default:'General';index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=120"`
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=IdeaHub Academic Events General"`
}

// PostResponse is a post enriched with counts and its author
type PostResponse struct {
	Post
	Likes    int64       `json:"likes"`
	Comments int64       `json:"comments"`
	Author   UserCompact `json:"author"`
}
