package db

import "time"

// HomeSection 定义首页按 sectionKey 寻址的内容区块
type HomeSection struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SectionKey string         `gorm:"uniqueIndex;not null" json:"sectionKey"`
	Title      string         `gorm:"not null" json:"title"`
	Subtitle   string         `json:"subtitle"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	ImageURL   string         `json:"imageUrl"`
	ButtonText string         `json:"buttonText"`
	ButtonLink string         `json:"buttonLink"`
	SortOrder  int            `gorm:"default:0;index" json:"order"`
	Active     bool           `gorm:"not null;index" json:"active"`
	Images     []SectionImage `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE" json:"images"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// SectionImage 是区块内的有序图片
type SectionImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SectionID uint      `gorm:"index;not null" json:"sectionId"`
	URL       string    `gorm:"not null" json:"url"`
	Alt       string    `json:"alt"`
	Caption   string    `json:"caption"`
	SortOrder int       `gorm:"default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
