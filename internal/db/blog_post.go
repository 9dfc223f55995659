package db

import "time"

// BlogPost 定义博客文章
type BlogPost struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	Content     string     `gorm:"type:text" json:"content"`
	ImageURL    string     `json:"imageUrl"`
	Author      string     `json:"author"`
	Published   bool       `gorm:"not null;index" json:"published"`
	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
	Views       uint       `gorm:"default:0" json:"views"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
