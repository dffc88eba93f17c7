package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PropertyInput carries raw listing fields as they arrive from a form.
// Empty strings mean "not provided".
type PropertyInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	BHK         string   `json:"bhk"`
	Bathrooms   string   `json:"bathrooms"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Area        string   `json:"area"`
	Amenities   []string `json:"amenities"`
	Featured    string   `json:"featured"`
	Status      string   `json:"status"`
}

// ToProperty coerces a create request into a new listing. Required fields
// are checked here; range checks are left to Property.Validate.
func (in PropertyInput) ToProperty() (*Property, error) {
	in = in.trimmed()
	if in.Title == "" || in.Price == "" || in.City == "" || in.BHK == "" || in.Bathrooms == "" || in.Area == "" {
		return nil, fmt.Errorf("%w: please provide all required fields", ErrValidation)
	}

	p := &Property{
		Title:       in.Title,
		Description: in.Description,
		City:        in.City,
		Address:     in.Address,
		Area:        in.Area,
		Amenities:   ParseAmenities(in.Amenities),
		Featured:    ParseBool(in.Featured),
		Status:      StatusAvailable,
		Images:      []MediaHandle{},
	}

	var err error
	if p.Price, err = ParsePrice(in.Price); err != nil {
		return nil, err
	}
	if p.BHK, err = ParseWhole("bhk", in.BHK); err != nil {
		return nil, err
	}
	if p.Bathrooms, err = ParseWhole("bathrooms", in.Bathrooms); err != nil {
		return nil, err
	}
	if in.Status != "" {
		p.Status = PropertyStatus(in.Status)
	}
	return p, nil
}

// ApplyTo copies every provided field onto p.
func (in PropertyInput) ApplyTo(p *Property) error {
	in = in.trimmed()
	if in.Title != "" {
		p.Title = in.Title
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.City != "" {
		p.City = in.City
	}
	if in.Address != "" {
		p.Address = in.Address
	}
	if in.Area != "" {
		p.Area = in.Area
	}
	if in.Price != "" {
		v, err := ParsePrice(in.Price)
		if err != nil {
			return err
		}
		p.Price = v
	}
	if in.BHK != "" {
		v, err := ParseWhole("bhk", in.BHK)
		if err != nil {
			return err
		}
		p.BHK = v
	}
	if in.Bathrooms != "" {
		v, err := ParseWhole("bathrooms", in.Bathrooms)
		if err != nil {
			return err
		}
		p.Bathrooms = v
	}
	if in.Amenities != nil {
		p.Amenities = ParseAmenities(in.Amenities)
	}
	if in.Featured != "" {
		p.Featured = ParseBool(in.Featured)
	}
	if in.Status != "" {
		p.Status = PropertyStatus(in.Status)
	}
	return nil
}

func (in PropertyInput) trimmed() PropertyInput {
	out := in
	for _, f := range []*string{&out.Title, &out.Description, &out.Price, &out.BHK, &out.Bathrooms,
		&out.City, &out.Address, &out.Area, &out.Featured, &out.Status} {
		*f = strings.TrimSpace(*f)
	}
	return out
}

// ParseAmenities accepts repeated values, a JSON list in a single value, or
// a comma-delimited string, and returns the trimmed non-empty entries in
// order.
func ParseAmenities(raw []string) []string {
	out := []string{}
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		var list []string
		if strings.HasPrefix(v, "[") && json.Unmarshal([]byte(v), &list) == nil {
			out = appendTrimmed(out, list)
			continue
		}
		out = appendTrimmed(out, strings.Split(v, ","))
	}
	return out
}

func appendTrimmed(dst, src []string) []string {
	for _, s := range src {
		if s = strings.TrimSpace(s); s != "" {
			dst = append(dst, s)
		}
	}
	return dst
}

// ParseBool treats only "true" (any case) as true.
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: price must be a number", ErrValidation)
	}
	return v, nil
}

// ParseWhole parses a whole number; "3" and "3.0" are accepted, "3.5" is not.
func ParseWhole(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be a whole number", ErrValidation, field)
	}
	return int(v), nil
}

// FilterQuery holds the raw query parameters of a listing search.
type FilterQuery struct {
	City     string
	MinPrice string
	MaxPrice string
	BHK      string
	Sort     string
	Page     string
	Limit    string
}

// ToFilter parses the query. Empty parameters are not applied; present but
// non-numeric bounds are rejected.
func (q FilterQuery) ToFilter() (PropertyFilter, error) {
	f := PropertyFilter{
		City:       strings.TrimSpace(q.City),
		Sort:       ParsePropertySort(strings.TrimSpace(q.Sort)),
		Pagination: ParsePagination(q.Page, q.Limit),
	}
	if s := strings.TrimSpace(q.MinPrice); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) {
			return PropertyFilter{}, fmt.Errorf("%w: minPrice must be a number", ErrValidation)
		}
		f.MinPrice = &v
	}
	if s := strings.TrimSpace(q.MaxPrice); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) {
			return PropertyFilter{}, fmt.Errorf("%w: maxPrice must be a number", ErrValidation)
		}
		f.MaxPrice = &v
	}
	if s := strings.TrimSpace(q.BHK); s != "" {
		v, err := ParseWhole("bhk", s)
		if err != nil {
			return PropertyFilter{}, err
		}
		f.BHK = &v
	}
	return f, nil
}
