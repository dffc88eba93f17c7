package domain

import "context"

type PropertyRepository interface {
	Create(ctx context.Context, p *Property) error
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Property, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*Property, error)
	List(ctx context.Context, p Pagination) (Page[*Property], error)
	Filter(ctx context.Context, f PropertyFilter) (Page[*Property], error)
	DistinctCities(ctx context.Context) ([]string, error)
}

type EnquiryRepository interface {
	Create(ctx context.Context, e *Enquiry) error
	FindByID(ctx context.Context, id string) (*Enquiry, error)
	List(ctx context.Context, f EnquiryFilter) (Page[*Enquiry], error)
	UpdateStatus(ctx context.Context, id string, status EnquiryStatus) (*Enquiry, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (EnquiryStats, error)
}

type AdminRepository interface {
	Create(ctx context.Context, a *Admin) error
	Update(ctx context.Context, a *Admin) error
	FindByID(ctx context.Context, id string) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
}
