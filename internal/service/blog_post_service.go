package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bionutrex/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound       = errors.New("blog post not found")
	ErrPostFieldsRequired = errors.New("title, excerpt, content and author are required")
	ErrPostImageRequired  = errors.New("image is required")
)

// BlogPostService manages blog posts, their slugs and view counters.
type BlogPostService struct {
	db  *gorm.DB
	now func() time.Time
}

// BlogPostInput carries post fields; nil means "not provided".
type BlogPostInput struct {
	Title     *string
	Excerpt   *string
	Content   *string
	ImageURL  *string
	Author    *string
	Published *bool
}

// NewBlogPostService creates a BlogPostService instance.
func NewBlogPostService(gdb *gorm.DB) *BlogPostService {
	return &BlogPostService{db: gdb, now: time.Now}
}

// ListPublished returns published posts, newest publication first.
func (s *BlogPostService) ListPublished() ([]db.BlogPost, error) {
	items := make([]db.BlogPost, 0)
	err := s.db.Where("published = ?", true).
		Order("published_at desc").
		Order("id desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListAll returns every post, newest first.
func (s *BlogPostService) ListAll() ([]db.BlogPost, error) {
	items := make([]db.BlogPost, 0)
	if err := s.db.Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a post by id regardless of its published flag.
func (s *BlogPostService) Get(id uint) (*db.BlogPost, error) {
	var item db.BlogPost
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ViewBySlug returns a published post and increments its view counter.
// The increment is a single UPDATE so concurrent readers never lose a view.
func (s *BlogPostService) ViewBySlug(slug string) (*db.BlogPost, error) {
	var item db.BlogPost
	if err := s.db.Where("slug = ? AND published = ?", slug, true).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&item).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		return nil, err
	}
	if err := s.db.Select("views").First(&item, item.ID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a post with a unique slug derived from its title.
func (s *BlogPostService) Create(input BlogPostInput) (*db.BlogPost, error) {
	item := db.BlogPost{
		Title:     valueOr(input.Title),
		Excerpt:   valueOr(input.Excerpt),
		Content:   valueOr(input.Content),
		ImageURL:  valueOr(input.ImageURL),
		Author:    valueOr(input.Author),
		Published: boolOr(input.Published, false),
	}
	if item.Title == "" || item.Excerpt == "" || item.Content == "" || item.Author == "" {
		return nil, ErrPostFieldsRequired
	}
	if item.ImageURL == "" {
		return nil, ErrPostImageRequired
	}

	slug, err := s.uniqueSlug(item.Title, 0)
	if err != nil {
		return nil, err
	}
	item.Slug = slug

	if item.Published {
		now := s.now()
		item.PublishedAt = &now
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies provided fields. A title change regenerates the slug and every
// transition from draft to published stamps PublishedAt; unpublishing keeps it.
func (s *BlogPostService) Update(id uint, input BlogPostInput) (*db.BlogPost, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	previousTitle := item.Title
	setRequired(&item.Title, input.Title)
	setRequired(&item.Excerpt, input.Excerpt)
	setRequired(&item.Content, input.Content)
	setRequired(&item.Author, input.Author)
	setRequired(&item.ImageURL, input.ImageURL)

	if item.Title != previousTitle {
		slug, err := s.uniqueSlug(item.Title, item.ID)
		if err != nil {
			return nil, err
		}
		item.Slug = slug
	}

	if input.Published != nil {
		if *input.Published && !item.Published {
			now := s.now()
			item.PublishedAt = &now
		}
		item.Published = *input.Published
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a post.
func (s *BlogPostService) Delete(id uint) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

// uniqueSlug finds the first free slug among base, base-1, base-2, ...
// The check and the later write are not atomic; the unique index is the backstop.
func (s *BlogPostService) uniqueSlug(title string, excludeID uint) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = fallbackSlug
	}

	slug := base
	for counter := 1; ; counter++ {
		query := s.db.Model(&db.BlogPost{}).Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
