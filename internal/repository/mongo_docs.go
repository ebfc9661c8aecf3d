package repository

import (
	"time"

	"photoshare/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Document shapes as stored in MongoDB. Ids are native ObjectIDs so the
// collections stay compatible with data loaded by other tools.

type userDoc struct {
	ID          bson.ObjectID `bson:"_id"`
	FirstName   string        `bson:"first_name"`
	LastName    string        `bson:"last_name"`
	Location    string        `bson:"location"`
	Description string        `bson:"description"`
	Occupation  string        `bson:"occupation"`
	LoginName   string        `bson:"login_name"`
	Password    string        `bson:"password"`
}

type commentDoc struct {
	ID       bson.ObjectID `bson:"_id"`
	Comment  string        `bson:"comment"`
	DateTime time.Time     `bson:"date_time"`
	UserID   bson.ObjectID `bson:"user_id"`
}

type photoDoc struct {
	ID       bson.ObjectID `bson:"_id"`
	FileName string        `bson:"file_name"`
	DateTime time.Time     `bson:"date_time"`
	UserID   bson.ObjectID `bson:"user_id"`
	Comments []commentDoc  `bson:"comments"`
}

type schemaInfoDoc struct {
	ID           bson.ObjectID `bson:"_id"`
	Version      string        `bson:"version"`
	LoadDateTime time.Time     `bson:"load_date_time"`
}

// objectID parses hex, minting a fresh id for empty input.
func objectID(hex string) (bson.ObjectID, error) {
	if hex == "" {
		return bson.NewObjectID(), nil
	}
	return bson.ObjectIDFromHex(hex)
}

func hexOrEmpty(id bson.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}

func newUserDoc(u *models.User) (*userDoc, error) {
	id, err := objectID(u.ID)
	if err != nil {
		return nil, err
	}
	return &userDoc{
		ID:          id,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Location:    u.Location,
		Description: u.Description,
		Occupation:  u.Occupation,
		LoginName:   u.LoginName,
		Password:    u.Password,
	}, nil
}

func (d *userDoc) model() *models.User {
	return &models.User{
		ID:          d.ID.Hex(),
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Location:    d.Location,
		Description: d.Description,
		Occupation:  d.Occupation,
		LoginName:   d.LoginName,
		Password:    d.Password,
	}
}

func newCommentDoc(c *models.Comment) (*commentDoc, error) {
	id, err := objectID(c.ID)
	if err != nil {
		return nil, err
	}
	author, err := bson.ObjectIDFromHex(c.UserID)
	if err != nil {
		return nil, err
	}
	return &commentDoc{ID: id, Comment: c.Comment, DateTime: c.DateTime, UserID: author}, nil
}

func newPhotoDoc(p *models.Photo) (*photoDoc, error) {
	id, err := objectID(p.ID)
	if err != nil {
		return nil, err
	}
	owner, err := bson.ObjectIDFromHex(p.UserID)
	if err != nil {
		return nil, err
	}
	doc := &photoDoc{
		ID:       id,
		FileName: p.FileName,
		DateTime: p.DateTime,
		UserID:   owner,
		Comments: make([]commentDoc, 0, len(p.Comments)),
	}
	for i := range p.Comments {
		c, err := newCommentDoc(&p.Comments[i])
		if err != nil {
			return nil, err
		}
		doc.Comments = append(doc.Comments, *c)
	}
	return doc, nil
}

func (d *photoDoc) model() models.Photo {
	p := models.Photo{
		ID:       d.ID.Hex(),
		FileName: d.FileName,
		DateTime: d.DateTime,
		UserID:   hexOrEmpty(d.UserID),
		Comments: make([]models.Comment, 0, len(d.Comments)),
	}
	for _, c := range d.Comments {
		p.Comments = append(p.Comments, models.Comment{
			ID:       c.ID.Hex(),
			PhotoID:  p.ID,
			Comment:  c.Comment,
			DateTime: c.DateTime,
			UserID:   hexOrEmpty(c.UserID),
		})
	}
	return p
}
