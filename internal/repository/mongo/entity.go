package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/repository"
	apperrors "github.com/healthml/healthdata-api/pkg/errors"
)

// doc pairs the driver-owned ObjectID with the entity body. The body's DocID
// field is excluded from bson; it is filled from the ObjectID on reads.
type doc[T any] struct {
	OID  primitive.ObjectID `bson:"_id,omitempty"`
	Body T                  `bson:",inline"`
}

// docStore is the document-backend adapter shared by every entity. All five
// collections get identical CRUD semantics out of it.
type docStore[T any, PT interface {
	model.Document
	*T
}] struct {
	coll     *mongo.Collection
	resource string
}

func newDocStore[T any, PT interface {
	model.Document
	*T
}](db *mongo.Database, collection, resource string) *docStore[T, PT] {
	return &docStore[T, PT]{
		coll:     db.Collection(collection),
		resource: resource,
	}
}

// NewHealthConditionRepository returns the document adapter for health conditions.
func NewHealthConditionRepository(db *mongo.Database) repository.EntityStore[model.HealthCondition] {
	return newDocStore[model.HealthCondition](db, HealthConditionsCollection, "health condition")
}

// NewLifestyleFactorRepository returns the document adapter for lifestyle factors.
func NewLifestyleFactorRepository(db *mongo.Database) repository.EntityStore[model.LifestyleFactor] {
	return newDocStore[model.LifestyleFactor](db, LifestyleFactorsCollection, "lifestyle factor")
}

// NewHealthMetricRepository returns the document adapter for health metrics.
func NewHealthMetricRepository(db *mongo.Database) repository.EntityStore[model.HealthMetric] {
	return newDocStore[model.HealthMetric](db, HealthMetricsCollection, "health metric")
}

// NewHealthcareAccessRepository returns the document adapter for healthcare access.
func NewHealthcareAccessRepository(db *mongo.Database) repository.EntityStore[model.HealthcareAccess] {
	return newDocStore[model.HealthcareAccess](db, HealthcareAccessCollection, "healthcare access")
}

// Initialize creates the PatientID index used by referential lookups and the
// application-level join.
func (s *docStore[T, PT]) Initialize(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "PatientID", Value: 1}},
		Options: options.Index().SetName("PatientRef"),
	})
	return err
}

func (s *docStore[T, PT]) Create(ctx context.Context, rec *T) error {
	now := time.Now().UTC()
	PT(rec).SetTimestamps(now, now)

	res, err := s.coll.InsertOne(ctx, doc[T]{Body: *rec})
	if err != nil {
		return apperrors.Store(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		PT(rec).SetDocID(oid.Hex())
	}
	return nil
}

func (s *docStore[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.BadRequest("invalid "+s.resource+" ID", err)
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *docStore[T, PT]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var d doc[T]
	err := s.coll.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFound(s.resource, err)
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	body := d.Body
	PT(&body).SetDocID(d.OID.Hex())
	return &body, nil
}

func (s *docStore[T, PT]) Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.BadRequest("invalid "+s.resource+" ID", err)
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, apperrors.Store(err)
	}
	if res.MatchedCount == 0 {
		return nil, apperrors.NotFound(s.resource, nil)
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *docStore[T, PT]) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.BadRequest("invalid "+s.resource+" ID", err)
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.Store(err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound(s.resource, nil)
	}
	return nil
}

func (s *docStore[T, PT]) List(ctx context.Context, page model.Page) ([]*T, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page.Skip)).
		SetLimit(int64(page.Limit))

	records, err := s.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, apperrors.Store(err)
	}
	return records, total, nil
}

func (s *docStore[T, PT]) Latest(ctx context.Context, limit int) ([]*T, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(int64(limit))
	return s.find(ctx, bson.M{}, opts)
}

func (s *docStore[T, PT]) ListByPatient(ctx context.Context, patientID int64) ([]*T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return s.find(ctx, bson.M{"PatientID": patientID}, opts)
}

func (s *docStore[T, PT]) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*T, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	defer cursor.Close(ctx)

	records := []*T{}
	for cursor.Next(ctx) {
		var d doc[T]
		if err := cursor.Decode(&d); err != nil {
			return nil, apperrors.Store(err)
		}
		body := d.Body
		PT(&body).SetDocID(d.OID.Hex())
		records = append(records, &body)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Store(err)
	}
	return records, nil
}
