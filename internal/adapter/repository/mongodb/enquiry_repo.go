package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type EnquiryRepository struct {
	collection *mongo.Collection
	log        *logger.Logger
}

func NewEnquiryRepository(db *mongo.Database, log *logger.Logger) *EnquiryRepository {
	return &EnquiryRepository{
		collection: db.Collection(enquiriesCollection),
		log:        log.Named("EnquiryRepository"),
	}
}

func (r *EnquiryRepository) Create(ctx context.Context, e *domain.Enquiry) error {
	propertyID, err := objectID(e.PropertyID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	if e.Status == "" {
		e.Status = domain.EnquiryPending
	}

	doc := enquiryDocument{
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Message:    e.Message,
		PropertyID: propertyID,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.log.Error("insert enquiry failed", zap.Error(err))
		return fmt.Errorf("insert enquiry: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid.Hex()
	}
	return nil
}

func (r *EnquiryRepository) FindByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc enquiryDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: enquiry %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("find enquiry: %w", err)
	}
	return toDomainEnquiry(&doc), nil
}

func (r *EnquiryRepository) List(ctx context.Context, f domain.EnquiryFilter) (domain.Page[*domain.Enquiry], error) {
	p := f.Pagination.Normalize()
	query := bson.M{}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.PropertyID != "" {
		oid, err := primitive.ObjectIDFromHex(f.PropertyID)
		if err != nil {
			return domain.NewPage[*domain.Enquiry](nil, 0, p), nil
		}
		query["propertyId"] = oid
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return domain.Page[*domain.Enquiry]{}, fmt.Errorf("count enquiries: %w", err)
	}
	opts := options.Find().
		SetSort(bsonD("createdAt", -1, "_id", -1)).
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit))
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return domain.Page[*domain.Enquiry]{}, fmt.Errorf("find enquiries: %w", err)
	}
	var docs []enquiryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return domain.Page[*domain.Enquiry]{}, fmt.Errorf("decode enquiries: %w", err)
	}

	items := make([]*domain.Enquiry, 0, len(docs))
	for i := range docs {
		items = append(items, toDomainEnquiry(&docs[i]))
	}
	return domain.NewPage(items, total, p), nil
}

func (r *EnquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.EnquiryStatus) (*domain.Enquiry, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc enquiryDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: enquiry %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("update enquiry status: %w", err)
	}
	return toDomainEnquiry(&doc), nil
}

func (r *EnquiryRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete enquiry: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: enquiry %s", domain.ErrNotFound, id)
	}
	return nil
}

// Stats counts enquiries per status in a single aggregation.
func (r *EnquiryRepository) Stats(ctx context.Context) (domain.EnquiryStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.EnquiryStats{}, fmt.Errorf("aggregate enquiry stats: %w", err)
	}
	var rows []struct {
		Status domain.EnquiryStatus `bson:"_id"`
		Count  int64                `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return domain.EnquiryStats{}, fmt.Errorf("decode enquiry stats: %w", err)
	}

	var stats domain.EnquiryStats
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case domain.EnquiryPending:
			stats.Pending = row.Count
		case domain.EnquiryContacted:
			stats.Contacted = row.Count
		case domain.EnquiryClosed:
			stats.Closed = row.Count
		}
	}
	return stats, nil
}
