package service

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/bionutrex/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrSectionNotFound       = errors.New("home section not found")
	ErrSectionKeyExists      = errors.New("section key already exists")
	ErrSectionFieldsRequired = errors.New("section key, title and content are required")
)

// HomeSectionService manages keyed home page sections and their image galleries.
type HomeSectionService struct {
	db  *gorm.DB
	log *slog.Logger
}

// SectionImageInput describes one gallery image in an update request.
type SectionImageInput struct {
	URL     string
	Alt     string
	Caption string
	Order   *int
}

// HomeSectionInput carries section fields; nil means "not provided".
// Images replace the whole gallery when ReplaceImages is set.
type HomeSectionInput struct {
	SectionKey    *string
	Title         *string
	Subtitle      *string
	Content       *string
	ImageURL      *string
	ButtonText    *string
	ButtonLink    *string
	Order         *int
	Active        *bool
	Images        []SectionImageInput
	ReplaceImages bool
}

// NewHomeSectionService creates a HomeSectionService instance.
func NewHomeSectionService(gdb *gorm.DB, log *slog.Logger) *HomeSectionService {
	if log == nil {
		log = slog.Default()
	}
	return &HomeSectionService{db: gdb, log: log}
}

// List returns sections ordered by order then title, with their images when available.
func (s *HomeSectionService) List(activeOnly bool) ([]db.HomeSection, error) {
	query := s.withImages(s.db.Model(&db.HomeSection{}))
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	items := make([]db.HomeSection, 0)
	if err := query.Order("sort_order asc").Order("title asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a section by id regardless of its active flag.
func (s *HomeSectionService) Get(id uint) (*db.HomeSection, error) {
	var item db.HomeSection
	if err := s.withImages(s.db).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return &item, nil
}

// GetByKey fetches an active section by its key.
func (s *HomeSectionService) GetByKey(key string) (*db.HomeSection, error) {
	var item db.HomeSection
	err := s.withImages(s.db).
		Where("section_key = ? AND active = ?", strings.TrimSpace(key), true).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a section and any provided images; key, title and content are
// mandatory and the key must be unique.
func (s *HomeSectionService) Create(input HomeSectionInput) (*db.HomeSection, error) {
	item := db.HomeSection{
		SectionKey: valueOr(input.SectionKey),
		Title:      valueOr(input.Title),
		Subtitle:   valueOr(input.Subtitle),
		Content:    valueOr(input.Content),
		ImageURL:   valueOr(input.ImageURL),
		ButtonText: valueOr(input.ButtonText),
		ButtonLink: valueOr(input.ButtonLink),
		SortOrder:  intOr(input.Order, 0),
		Active:     boolOr(input.Active, false),
	}
	if item.SectionKey == "" || item.Title == "" || item.Content == "" {
		return nil, ErrSectionFieldsRequired
	}

	taken, err := s.keyTaken(s.db, item.SectionKey, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSectionKeyExists
	}

	withImages := input.ReplaceImages && s.imagesAvailable()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
			return err
		}
		if !withImages {
			return nil
		}
		images := buildSectionImages(item.ID, input.Images)
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(item.ID)
}

// Update applies provided fields and, when requested, replaces the image gallery
// inside the same transaction. Without an images table only the section row is written.
func (s *HomeSectionService) Update(id uint, input HomeSectionInput) (*db.HomeSection, error) {
	var item db.HomeSection
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	previousKey := item.SectionKey
	setRequired(&item.SectionKey, input.SectionKey)
	setRequired(&item.Title, input.Title)
	setRequired(&item.Content, input.Content)
	setOptional(&item.Subtitle, input.Subtitle)
	setOptional(&item.ImageURL, input.ImageURL)
	setOptional(&item.ButtonText, input.ButtonText)
	setOptional(&item.ButtonLink, input.ButtonLink)
	setInt(&item.SortOrder, input.Order)
	setBool(&item.Active, input.Active)

	if item.SectionKey != previousKey {
		taken, err := s.keyTaken(s.db, item.SectionKey, item.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSectionKeyExists
		}
	}

	replaceImages := input.ReplaceImages
	if replaceImages && !s.imagesAvailable() {
		s.log.Warn("section images table unavailable, updating section fields only",
			slog.Uint64("section_id", uint64(item.ID)))
		replaceImages = false
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&item).Error; err != nil {
			return err
		}
		if !replaceImages {
			return nil
		}

		if err := tx.Where("section_id = ?", item.ID).Delete(&db.SectionImage{}).Error; err != nil {
			return err
		}
		images := buildSectionImages(item.ID, input.Images)
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(item.ID)
}

// Delete removes a section and all of its images.
func (s *HomeSectionService) Delete(id uint) error {
	var item db.HomeSection
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}

	withImages := s.imagesAvailable()
	return s.db.Transaction(func(tx *gorm.DB) error {
		if withImages {
			if err := tx.Where("section_id = ?", item.ID).Delete(&db.SectionImage{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&item).Error
	})
}

func (s *HomeSectionService) withImages(query *gorm.DB) *gorm.DB {
	if !s.imagesAvailable() {
		return query
	}
	return query.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("sort_order asc").Order("id asc")
	})
}

func (s *HomeSectionService) imagesAvailable() bool {
	return s.db.Migrator().HasTable(&db.SectionImage{})
}

func (s *HomeSectionService) keyTaken(tx *gorm.DB, key string, excludeID uint) (bool, error) {
	query := tx.Model(&db.HomeSection{}).Where("section_key = ?", key)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// buildSectionImages drops entries without a URL; a missing order defaults to the array index.
func buildSectionImages(sectionID uint, inputs []SectionImageInput) []db.SectionImage {
	images := make([]db.SectionImage, 0, len(inputs))
	for index, input := range inputs {
		url := strings.TrimSpace(input.URL)
		if url == "" {
			continue
		}
		images = append(images, db.SectionImage{
			SectionID: sectionID,
			URL:       url,
			Alt:       strings.TrimSpace(input.Alt),
			Caption:   strings.TrimSpace(input.Caption),
			SortOrder: intOr(input.Order, index),
		})
	}
	return images
}
