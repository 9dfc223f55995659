package db

import "time"

// Slider 定义首页轮播图
type Slider struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	ImageURL    string    `gorm:"not null" json:"imageUrl"`
	ButtonText  string    `json:"buttonText"`
	ButtonLink  string    `json:"buttonLink"`
	SortOrder   int       `gorm:"default:0;index" json:"order"`
	Active      bool      `gorm:"not null;index" json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
