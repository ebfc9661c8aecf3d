package repository

import (
	"context"
	"errors"

	"photoshare/internal/database"
	"photoshare/internal/models"
	"photoshare/internal/observability"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type mongoUserRepository struct {
	coll *mongo.Collection
	log  *observability.RepoLogger
}

// NewMongoUserRepository returns a UserRepository over the users collection.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{
		coll: db.Collection(database.UsersCollection),
		log:  observability.NewRepoLogger(BackendMongo, database.UsersCollection),
	}
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	defer observability.TrackQuery(BackendMongo, "get_by_id", database.UsersCollection)()

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewNotFoundError("User not found")
	}

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, models.NewInternalError(err)
	}
	return doc.model(), nil
}

func (r *mongoUserRepository) GetByLoginName(ctx context.Context, loginName string) (*models.User, error) {
	defer observability.TrackQuery(BackendMongo, "get_by_login_name", database.UsersCollection)()

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"login_name": loginName}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return doc.model(), nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery(BackendMongo, "create", database.UsersCollection)()

	doc, err := newUserDoc(user)
	if err != nil {
		return models.NewValidationError("Invalid User ID")
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.NewValidationError(loginNameTaken)
		}
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	user.ID = doc.ID.Hex()
	r.log.LogWrite(ctx, "create", map[string]any{"user_id": user.ID})
	return nil
}

func (r *mongoUserRepository) List(ctx context.Context) ([]models.User, error) {
	defer observability.TrackQuery(BackendMongo, "list", database.UsersCollection)()

	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, models.NewInternalError(err)
	}

	users := make([]models.User, 0, len(docs))
	for i := range docs {
		users = append(users, *docs[i].model())
	}
	return users, nil
}

func (r *mongoUserRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
