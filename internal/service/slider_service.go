package service

import (
	"errors"

	"github.com/bionutrex/internal/db"
	"gorm.io/gorm"
)

var (
	ErrSliderNotFound      = errors.New("slider not found")
	ErrSliderTitleRequired = errors.New("title is required")
	ErrSliderImageRequired = errors.New("image is required")
)

// SliderService handles home page slider CRUD.
type SliderService struct {
	db *gorm.DB
}

// SliderInput carries slider fields; nil means "not provided".
type SliderInput struct {
	Title       *string
	Subtitle    *string
	Description *string
	ImageURL    *string
	ButtonText  *string
	ButtonLink  *string
	Order       *int
	Active      *bool
}

// NewSliderService creates a SliderService instance.
func NewSliderService(gdb *gorm.DB) *SliderService {
	return &SliderService{db: gdb}
}

// List returns sliders ordered by order then title. activeOnly hides inactive rows.
func (s *SliderService) List(activeOnly bool) ([]db.Slider, error) {
	query := s.db.Model(&db.Slider{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	items := make([]db.Slider, 0)
	if err := query.Order("sort_order asc").Order("title asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a slider by id regardless of its active flag.
func (s *SliderService) Get(id uint) (*db.Slider, error) {
	var item db.Slider
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSliderNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a slider; title and image are mandatory. Sliders start inactive unless active is sent.
func (s *SliderService) Create(input SliderInput) (*db.Slider, error) {
	item := db.Slider{
		Title:       valueOr(input.Title),
		Subtitle:    valueOr(input.Subtitle),
		Description: valueOr(input.Description),
		ImageURL:    valueOr(input.ImageURL),
		ButtonText:  valueOr(input.ButtonText),
		ButtonLink:  valueOr(input.ButtonLink),
		SortOrder:   intOr(input.Order, 0),
		Active:      boolOr(input.Active, false),
	}
	if item.Title == "" {
		return nil, ErrSliderTitleRequired
	}
	if item.ImageURL == "" {
		return nil, ErrSliderImageRequired
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies the provided fields to an existing slider.
func (s *SliderService) Update(id uint, input SliderInput) (*db.Slider, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	setRequired(&item.Title, input.Title)
	setRequired(&item.ImageURL, input.ImageURL)
	setOptional(&item.Subtitle, input.Subtitle)
	setOptional(&item.Description, input.Description)
	setOptional(&item.ButtonText, input.ButtonText)
	setOptional(&item.ButtonLink, input.ButtonLink)
	setInt(&item.SortOrder, input.Order)
	setBool(&item.Active, input.Active)

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a slider.
func (s *SliderService) Delete(id uint) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}
