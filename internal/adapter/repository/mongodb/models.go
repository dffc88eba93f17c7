package mongodb

import (
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mediaDocument struct {
	URL      string `bson:"url"`
	PublicID string `bson:"publicId"`
}

type propertyDocument struct {
	ID          primitive.ObjectID    `bson:"_id,omitempty"`
	Title       string                `bson:"title"`
	Description string                `bson:"description"`
	Price       float64               `bson:"price"`
	BHK         int                   `bson:"bhk"`
	Bathrooms   int                   `bson:"bathrooms"`
	City        string                `bson:"city"`
	Address     string                `bson:"address"`
	Area        string                `bson:"area"`
	Amenities   []string              `bson:"amenities"`
	Images      []mediaDocument       `bson:"images"`
	Video       *mediaDocument        `bson:"video,omitempty"`
	Featured    bool                  `bson:"featured"`
	Status      domain.PropertyStatus `bson:"status"`
	CreatedAt   time.Time             `bson:"createdAt"`
	UpdatedAt   time.Time             `bson:"updatedAt"`
}

type enquiryDocument struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	Name       string               `bson:"name"`
	Email      string               `bson:"email"`
	Phone      string               `bson:"phone"`
	Message    string               `bson:"message"`
	PropertyID primitive.ObjectID   `bson:"propertyId"`
	Status     domain.EnquiryStatus `bson:"status"`
	CreatedAt  time.Time            `bson:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt"`
}

type adminDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func bsonD(pairs ...interface{}) bson.D {
	d := make(bson.D, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		d = append(d, bson.E{Key: pairs[i].(string), Value: pairs[i+1]})
	}
	return d
}

// objectID parses a hex id. Malformed ids are reported as not found since
// no record can carry them.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", domain.ErrNotFound, id)
	}
	return oid, nil
}

func toMediaDocuments(hs []domain.MediaHandle) []mediaDocument {
	out := make([]mediaDocument, 0, len(hs))
	for _, h := range hs {
		out = append(out, mediaDocument{URL: h.URL, PublicID: h.PublicID})
	}
	return out
}

func toDomainHandles(ds []mediaDocument) []domain.MediaHandle {
	out := make([]domain.MediaHandle, 0, len(ds))
	for _, d := range ds {
		out = append(out, domain.MediaHandle{URL: d.URL, PublicID: d.PublicID})
	}
	return out
}

func toPropertyDocument(p *domain.Property) (*propertyDocument, error) {
	doc := &propertyDocument{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		BHK:         p.BHK,
		Bathrooms:   p.Bathrooms,
		City:        p.City,
		Address:     p.Address,
		Area:        p.Area,
		Amenities:   p.Amenities,
		Images:      toMediaDocuments(p.Images),
		Featured:    p.Featured,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if doc.Amenities == nil {
		doc.Amenities = []string{}
	}
	if p.Video != nil {
		doc.Video = &mediaDocument{URL: p.Video.URL, PublicID: p.Video.PublicID}
	}
	if p.ID != "" {
		oid, err := objectID(p.ID)
		if err != nil {
			return nil, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func toDomainProperty(d *propertyDocument) *domain.Property {
	p := &domain.Property{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		BHK:         d.BHK,
		Bathrooms:   d.Bathrooms,
		City:        d.City,
		Address:     d.Address,
		Area:        d.Area,
		Amenities:   d.Amenities,
		Images:      toDomainHandles(d.Images),
		Featured:    d.Featured,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	if d.Video != nil {
		p.Video = &domain.MediaHandle{URL: d.Video.URL, PublicID: d.Video.PublicID}
	}
	return p
}

func toDomainEnquiry(d *enquiryDocument) *domain.Enquiry {
	return &domain.Enquiry{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Email:      d.Email,
		Phone:      d.Phone,
		Message:    d.Message,
		PropertyID: d.PropertyID.Hex(),
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func toDomainAdmin(d *adminDocument) *domain.Admin {
	return &domain.Admin{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
