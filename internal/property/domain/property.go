package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	MaxImages         = 5
	MaxTitleLen       = 200
	MaxDescriptionLen = 2000
	MinRooms          = 1
	MaxRooms          = 10
)

type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusSold      PropertyStatus = "sold"
	StatusRented    PropertyStatus = "rented"
)

func (s PropertyStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusRented:
		return true
	}
	return false
}

type Property struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	BHK         int            `json:"bhk"`
	Bathrooms   int            `json:"bathrooms"`
	City        string         `json:"city"`
	Address     string         `json:"address"`
	Area        string         `json:"area"`
	Amenities   []string       `json:"amenities"`
	Images      []MediaHandle  `json:"images"`
	Video       *MediaHandle   `json:"video,omitempty"`
	Featured    bool           `json:"featured"`
	Status      PropertyStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Validate checks the field constraints that hold for every stored listing.
func (p *Property) Validate() error {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case len([]rune(p.Title)) > MaxTitleLen:
		return fmt.Errorf("%w: title cannot exceed %d characters", ErrValidation, MaxTitleLen)
	case len([]rune(p.Description)) > MaxDescriptionLen:
		return fmt.Errorf("%w: description cannot exceed %d characters", ErrValidation, MaxDescriptionLen)
	case p.Price < 0:
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	case p.BHK < MinRooms || p.BHK > MaxRooms:
		return fmt.Errorf("%w: bhk must be between %d and %d", ErrValidation, MinRooms, MaxRooms)
	case p.Bathrooms < MinRooms || p.Bathrooms > MaxRooms:
		return fmt.Errorf("%w: bathrooms must be between %d and %d", ErrValidation, MinRooms, MaxRooms)
	case strings.TrimSpace(p.City) == "":
		return fmt.Errorf("%w: city is required", ErrValidation)
	case strings.TrimSpace(p.Area) == "":
		return fmt.Errorf("%w: area is required", ErrValidation)
	case !p.Status.IsValid():
		return fmt.Errorf("%w: status must be one of available, sold, rented", ErrValidation)
	case len(p.Images) > MaxImages:
		return fmt.Errorf("%w: total images cannot exceed %d", ErrValidation, MaxImages)
	}
	return nil
}

type SummaryLevel int

const (
	// SummaryBasic carries id, title, price, city and address.
	SummaryBasic SummaryLevel = iota
	// SummaryWithImages adds the image handles.
	SummaryWithImages
	// SummaryDetailed adds images, video, bhk and bathrooms.
	SummaryDetailed
)

// Summary is the listing view embedded in enquiry responses.
func (p *Property) Summary(level SummaryLevel) *PropertySummary {
	s := &PropertySummary{
		ID:      p.ID,
		Title:   p.Title,
		Price:   p.Price,
		City:    p.City,
		Address: p.Address,
	}
	if level >= SummaryWithImages {
		s.Images = p.Images
	}
	if level >= SummaryDetailed {
		s.Video = p.Video
		s.BHK = p.BHK
		s.Bathrooms = p.Bathrooms
	}
	return s
}

// PropertySummary is a denormalized subset of a listing.
type PropertySummary struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Price     float64       `json:"price"`
	City      string        `json:"city"`
	Address   string        `json:"address"`
	Images    []MediaHandle `json:"images,omitempty"`
	Video     *MediaHandle  `json:"video,omitempty"`
	BHK       int           `json:"bhk,omitempty"`
	Bathrooms int           `json:"bathrooms,omitempty"`
}

type PropertySort string

const (
	SortNewest    PropertySort = "newest"
	SortPriceAsc  PropertySort = "price_asc"
	SortPriceDesc PropertySort = "price_desc"
	SortBHKAsc    PropertySort = "bhk_asc"
	SortBHKDesc   PropertySort = "bhk_desc"
)

// ParsePropertySort maps unknown values to SortNewest.
func ParsePropertySort(s string) PropertySort {
	switch v := PropertySort(s); v {
	case SortPriceAsc, SortPriceDesc, SortBHKAsc, SortBHKDesc:
		return v
	}
	return SortNewest
}

// PropertyFilter narrows a listing search. Nil bounds are not applied.
type PropertyFilter struct {
	City       string
	MinPrice   *float64
	MaxPrice   *float64
	BHK        *int
	Sort       PropertySort
	Pagination Pagination
}
