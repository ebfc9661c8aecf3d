package repository

import (
	"context"
	"errors"

	"photoshare/internal/database"
	"photoshare/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoSchemaInfoRepository struct {
	coll *mongo.Collection
}

// NewMongoSchemaInfoRepository returns a SchemaInfoRepository over the schemainfos collection.
func NewMongoSchemaInfoRepository(db *mongo.Database) SchemaInfoRepository {
	return &mongoSchemaInfoRepository{coll: db.Collection(database.SchemaInfoCollection)}
}

func (r *mongoSchemaInfoRepository) Get(ctx context.Context) (*models.SchemaInfo, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "load_date_time", Value: -1}})

	var doc schemaInfoDoc
	if err := r.coll.FindOne(ctx, bson.D{}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("SchemaInfo not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &models.SchemaInfo{
		ID:           doc.ID.Hex(),
		Version:      doc.Version,
		LoadDateTime: doc.LoadDateTime,
	}, nil
}

func (r *mongoSchemaInfoRepository) Save(ctx context.Context, info *models.SchemaInfo) error {
	id, err := objectID(info.ID)
	if err != nil {
		return models.NewValidationError("Invalid SchemaInfo ID")
	}
	doc := schemaInfoDoc{ID: id, Version: info.Version, LoadDateTime: info.LoadDateTime}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return models.NewInternalError(err)
	}
	info.ID = id.Hex()
	return nil
}

func (r *mongoSchemaInfoRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
