package repository

import (
	"context"
	"errors"

	"photoshare/internal/database"
	"photoshare/internal/models"
	"photoshare/internal/observability"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoPhotoRepository struct {
	coll *mongo.Collection
	log  *observability.RepoLogger
}

// NewMongoPhotoRepository returns a PhotoRepository over the photos collection.
// Comments are embedded in their photo document.
func NewMongoPhotoRepository(db *mongo.Database) PhotoRepository {
	return &mongoPhotoRepository{
		coll: db.Collection(database.PhotosCollection),
		log:  observability.NewRepoLogger(BackendMongo, database.PhotosCollection),
	}
}

func (r *mongoPhotoRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	defer observability.TrackQuery(BackendMongo, "get_by_id", database.PhotosCollection)()

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewNotFoundError("Photo not found")
	}

	var doc photoDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("Photo not found")
		}
		return nil, models.NewInternalError(err)
	}
	photo := doc.model()
	return &photo, nil
}

func (r *mongoPhotoRepository) ListByOwner(ctx context.Context, userID string) ([]models.Photo, error) {
	defer observability.TrackQuery(BackendMongo, "list_by_owner", database.PhotosCollection)()

	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return []models.Photo{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "date_time", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": oid}, opts)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	var docs []photoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, models.NewInternalError(err)
	}

	photos := make([]models.Photo, 0, len(docs))
	for i := range docs {
		photos = append(photos, docs[i].model())
	}
	return photos, nil
}

func (r *mongoPhotoRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	defer observability.TrackQuery(BackendMongo, "count_by_owner", database.PhotosCollection)()

	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return 0, nil
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": oid})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// CountCommentsByOwner unwinds the embedded comments of the owner's photos and
// counts them server-side.
func (r *mongoPhotoRepository) CountCommentsByOwner(ctx context.Context, userID string) (int64, error) {
	defer observability.TrackQuery(BackendMongo, "count_comments_by_owner", database.PhotosCollection)()

	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return 0, nil
	}

	cur, err := r.coll.Aggregate(ctx, commentCountPipeline(oid))
	if err != nil {
		return 0, models.NewInternalError(err)
	}

	var rows []struct {
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, models.NewInternalError(err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Count, nil
}

// commentCountPipeline yields a single {count} row, or none when the owner's
// photos carry no comments.
func commentCountPipeline(owner bson.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": owner}}},
		{{Key: "$unwind", Value: "$comments"}},
		{{Key: "$group", Value: bson.M{"_id": nil, "count": bson.M{"$sum": 1}}}},
	}
}

func (r *mongoPhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	defer observability.TrackQuery(BackendMongo, "create", database.PhotosCollection)()

	doc, err := newPhotoDoc(photo)
	if err != nil {
		return models.NewValidationError("Invalid User ID")
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}

	photo.ID = doc.ID.Hex()
	for i := range photo.Comments {
		photo.Comments[i].ID = doc.Comments[i].ID.Hex()
		photo.Comments[i].PhotoID = photo.ID
	}
	r.log.LogWrite(ctx, "create", map[string]any{"photo_id": photo.ID, "user_id": photo.UserID})
	return nil
}

func (r *mongoPhotoRepository) AddComment(ctx context.Context, photoID string, comment *models.Comment) error {
	defer observability.TrackQuery(BackendMongo, "add_comment", database.PhotosCollection)()

	oid, err := bson.ObjectIDFromHex(photoID)
	if err != nil {
		return models.NewNotFoundError("Photo not found")
	}
	doc, err := newCommentDoc(comment)
	if err != nil {
		return models.NewValidationError("Invalid User ID")
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"comments": doc}})
	if err != nil {
		r.log.LogError(ctx, err, "add_comment")
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("Photo not found")
	}

	comment.ID = doc.ID.Hex()
	comment.PhotoID = photoID
	r.log.LogWrite(ctx, "add_comment", map[string]any{"photo_id": photoID, "comment_id": comment.ID})
	return nil
}

func (r *mongoPhotoRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
