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
	"go.uber.org/zap"
)

type AdminRepository struct {
	collection *mongo.Collection
	log        *logger.Logger
}

func NewAdminRepository(db *mongo.Database, log *logger.Logger) *AdminRepository {
	return &AdminRepository{
		collection: db.Collection(adminsCollection),
		log:        log.Named("AdminRepository"),
	}
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) error {
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	doc := adminDocument{
		Name:      a.Name,
		Email:     a.Email,
		Password:  a.PasswordHash,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: admin already exists with this email", domain.ErrConflict)
		}
		r.log.Error("insert admin failed", zap.Error(err))
		return fmt.Errorf("insert admin: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}

func (r *AdminRepository) Update(ctx context.Context, a *domain.Admin) error {
	oid, err := objectID(a.ID)
	if err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":      a.Name,
		"email":     a.Email,
		"password":  a.PasswordHash,
		"updatedAt": a.UpdatedAt,
	}}
	res, err := r.collection.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email already in use", domain.ErrConflict)
		}
		return fmt.Errorf("update admin: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: admin %s", domain.ErrNotFound, a.ID)
	}
	return nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id string) (*domain.Admin, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	var doc adminDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: admin", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return toDomainAdmin(&doc), nil
}
