package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type PropertyRepository struct {
	collection *mongo.Collection
	log        *logger.Logger
}

func NewPropertyRepository(db *mongo.Database, log *logger.Logger) *PropertyRepository {
	return &PropertyRepository{
		collection: db.Collection(propertiesCollection),
		log:        log.Named("PropertyRepository"),
	}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	doc, err := toPropertyDocument(p)
	if err != nil {
		return err
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		r.log.Error("insert property failed", zap.Error(err))
		return fmt.Errorf("insert property: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	p.UpdatedAt = time.Now().UTC()
	doc, err := toPropertyDocument(p)
	if err != nil {
		return err
	}
	set := bson.M{
		"title":       doc.Title,
		"description": doc.Description,
		"price":       doc.Price,
		"bhk":         doc.BHK,
		"bathrooms":   doc.Bathrooms,
		"city":        doc.City,
		"address":     doc.Address,
		"area":        doc.Area,
		"amenities":   doc.Amenities,
		"images":      doc.Images,
		"featured":    doc.Featured,
		"status":      doc.Status,
		"updatedAt":   doc.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if doc.Video != nil {
		set["video"] = doc.Video
	} else {
		update["$unset"] = bson.M{"video": ""}
	}

	res, err := r.collection.UpdateByID(ctx, doc.ID, update)
	if err != nil {
		r.log.Error("update property failed", zap.String("id", p.ID), zap.Error(err))
		return fmt.Errorf("update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: property %s", domain.ErrNotFound, p.ID)
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: property %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc propertyDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: property %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return toDomainProperty(&doc), nil
}

// FindByIDs returns the listings that still exist, keyed by id. Malformed
// and unknown ids are skipped.
func (r *PropertyRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Property, error) {
	out := make(map[string]*domain.Property, len(ids))
	oids := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		if _, dup := seen[oid]; dup {
			continue
		}
		seen[oid] = struct{}{}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return out, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find properties by ids: %w", err)
	}
	var docs []propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	for i := range docs {
		p := toDomainProperty(&docs[i])
		out[p.ID] = p
	}
	return out, nil
}

func (r *PropertyRepository) List(ctx context.Context, p domain.Pagination) (domain.Page[*domain.Property], error) {
	return r.page(ctx, bson.M{}, sortFor(domain.SortNewest), p.Normalize())
}

func (r *PropertyRepository) Filter(ctx context.Context, f domain.PropertyFilter) (domain.Page[*domain.Property], error) {
	return r.page(ctx, buildPropertyQuery(f), sortFor(f.Sort), f.Pagination.Normalize())
}

func (r *PropertyRepository) DistinctCities(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "city", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct cities: %w", err)
	}
	cities := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			cities = append(cities, s)
		}
	}
	sort.Strings(cities)
	return cities, nil
}

func (r *PropertyRepository) page(ctx context.Context, query bson.M, order bson.D, p domain.Pagination) (domain.Page[*domain.Property], error) {
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return domain.Page[*domain.Property]{}, fmt.Errorf("count properties: %w", err)
	}

	opts := options.Find().SetSort(order).SetSkip(p.Skip()).SetLimit(int64(p.Limit))
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return domain.Page[*domain.Property]{}, fmt.Errorf("find properties: %w", err)
	}
	var docs []propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return domain.Page[*domain.Property]{}, fmt.Errorf("decode properties: %w", err)
	}

	items := make([]*domain.Property, 0, len(docs))
	for i := range docs {
		items = append(items, toDomainProperty(&docs[i]))
	}
	return domain.NewPage(items, total, p), nil
}

func buildPropertyQuery(f domain.PropertyFilter) bson.M {
	query := bson.M{}
	if f.City != "" {
		query["city"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.City), Options: "i"}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}
	if f.BHK != nil {
		query["bhk"] = *f.BHK
	}
	return query
}

// sortFor always ends with _id so pages are stable when keys tie.
func sortFor(s domain.PropertySort) bson.D {
	switch s {
	case domain.SortPriceAsc:
		return bsonD("price", 1, "_id", 1)
	case domain.SortPriceDesc:
		return bsonD("price", -1, "_id", -1)
	case domain.SortBHKAsc:
		return bsonD("bhk", 1, "_id", 1)
	case domain.SortBHKDesc:
		return bsonD("bhk", -1, "_id", -1)
	default:
		return bsonD("createdAt", -1, "_id", -1)
	}
}
