// Package seed loads the demo photo dataset and generates fake users for
// development and testing.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"photoshare/internal/auth"
	"photoshare/internal/models"
	"photoshare/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// Dataset is the fixture file layout. Users are referenced by key from photos
// and comments so the file stays independent of generated ids.
type Dataset struct {
	Version  string         `yaml:"version"`
	Password string         `yaml:"password"`
	Users    []UserFixture  `yaml:"users"`
	Photos   []PhotoFixture `yaml:"photos"`
}

type UserFixture struct {
	Key         string `yaml:"key"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
	Occupation  string `yaml:"occupation"`
	LoginName   string `yaml:"login_name"`
}

type PhotoFixture struct {
	Owner    string           `yaml:"owner"`
	FileName string           `yaml:"file_name"`
	DateTime time.Time        `yaml:"date_time"`
	Comments []CommentFixture `yaml:"comments"`
}

type CommentFixture struct {
	Author   string    `yaml:"author"`
	DateTime time.Time `yaml:"date_time"`
	Text     string    `yaml:"text"`
}

// Result reports what a seeding run created. UserIDs maps fixture keys (or
// login names for generated users) to stored ids.
type Result struct {
	Users    int
	Photos   int
	Comments int
	UserIDs  map[string]string
}

// DefaultDataset parses the embedded fixture file.
func DefaultDataset() (*Dataset, error) {
	return ParseDataset(fixturesYAML)
}

// ParseDataset decodes raw fixture YAML and checks every reference resolves.
func ParseDataset(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	keys := make(map[string]bool, len(ds.Users))
	for _, u := range ds.Users {
		if u.Key == "" || u.LoginName == "" {
			return nil, fmt.Errorf("fixture user %q needs key and login_name", u.LoginName)
		}
		if keys[u.Key] {
			return nil, fmt.Errorf("duplicate fixture user key %q", u.Key)
		}
		keys[u.Key] = true
	}
	for _, p := range ds.Photos {
		if !keys[p.Owner] {
			return nil, fmt.Errorf("photo %s: unknown owner %q", p.FileName, p.Owner)
		}
		for _, c := range p.Comments {
			if !keys[c.Author] {
				return nil, fmt.Errorf("photo %s: unknown comment author %q", p.FileName, c.Author)
			}
		}
	}
	return &ds, nil
}

// LoadFixtures writes the embedded dataset into store. Passwords are stored
// through hasher so the configured login scheme accepts them.
func LoadFixtures(ctx context.Context, store *repository.Store, hasher auth.PasswordHasher) (*Result, error) {
	ds, err := DefaultDataset()
	if err != nil {
		return nil, err
	}
	return Load(ctx, store, hasher, ds)
}

// Load writes ds into store: users first, then photos with their comments,
// then the schema version marker.
func Load(ctx context.Context, store *repository.Store, hasher auth.PasswordHasher, ds *Dataset) (*Result, error) {
	password, err := hasher.Hash(ds.Password)
	if err != nil {
		return nil, err
	}

	res := &Result{UserIDs: make(map[string]string, len(ds.Users))}
	for _, f := range ds.Users {
		user := &models.User{
			FirstName:   f.FirstName,
			LastName:    f.LastName,
			Location:    f.Location,
			Description: f.Description,
			Occupation:  f.Occupation,
			LoginName:   f.LoginName,
			Password:    password,
		}
		if err := store.Users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user %s: %w", f.LoginName, err)
		}
		res.UserIDs[f.Key] = user.ID
		res.Users++
	}

	for _, f := range ds.Photos {
		photo := &models.Photo{
			FileName: f.FileName,
			DateTime: f.DateTime,
			UserID:   res.UserIDs[f.Owner],
		}
		for _, c := range f.Comments {
			photo.Comments = append(photo.Comments, models.Comment{
				Comment:  c.Text,
				DateTime: c.DateTime,
				UserID:   res.UserIDs[c.Author],
			})
		}
		if err := store.Photos.Create(ctx, photo); err != nil {
			return nil, fmt.Errorf("create photo %s: %w", f.FileName, err)
		}
		res.Photos++
		res.Comments += len(photo.Comments)
	}

	info := &models.SchemaInfo{Version: ds.Version, LoadDateTime: time.Now().UTC()}
	if err := store.SchemaInfo.Save(ctx, info); err != nil {
		return nil, fmt.Errorf("save schema info: %w", err)
	}
	return res, nil
}

// IsEmpty reports whether store holds no users yet.
func IsEmpty(ctx context.Context, store *repository.Store) (bool, error) {
	n, err := store.Users.Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Options controls fake data generation.
type Options struct {
	NumUsers         int
	PhotosPerUser    int
	CommentsPerPhoto int
	// Seed makes generation reproducible; zero picks a random seed.
	Seed int64
}

// Fake creates opts.NumUsers generated users, each with photos commented on
// by random generated users. Every fake account uses password.
func Fake(ctx context.Context, store *repository.Store, hasher auth.PasswordHasher, password string, opts Options) (*Result, error) {
	if opts.NumUsers <= 0 {
		return &Result{UserIDs: map[string]string{}}, nil
	}
	if opts.PhotosPerUser <= 0 {
		opts.PhotosPerUser = 2
	}
	if opts.CommentsPerPhoto < 0 {
		opts.CommentsPerPhoto = 0
	}

	hashed, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	faker := gofakeit.New(opts.Seed)
	res := &Result{UserIDs: make(map[string]string, opts.NumUsers)}
	ids := make([]string, 0, opts.NumUsers)

	for i := 0; i < opts.NumUsers; i++ {
		first, last := faker.FirstName(), faker.LastName()
		login := fmt.Sprintf("%s.%s.%d", strings.ToLower(first), strings.ToLower(last), faker.Number(1000, 9999))
		user := &models.User{
			FirstName:   first,
			LastName:    last,
			Location:    faker.City(),
			Description: faker.Sentence(8),
			Occupation:  faker.JobTitle(),
			LoginName:   login,
			Password:    hashed,
		}
		if err := store.Users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create fake user %s: %w", login, err)
		}
		res.UserIDs[login] = user.ID
		ids = append(ids, user.ID)
		res.Users++
	}

	end := time.Now().UTC()
	start := end.AddDate(-3, 0, 0)
	for _, owner := range ids {
		for p := 0; p < opts.PhotosPerUser; p++ {
			taken := faker.DateRange(start, end)
			photo := &models.Photo{
				FileName: fmt.Sprintf("%s.jpg", faker.UUID()),
				DateTime: taken,
				UserID:   owner,
			}
			for c := 0; c < opts.CommentsPerPhoto; c++ {
				photo.Comments = append(photo.Comments, models.Comment{
					Comment:  faker.Sentence(faker.Number(3, 12)),
					DateTime: taken.Add(time.Duration(c+1) * time.Hour),
					UserID:   ids[faker.Number(0, len(ids)-1)],
				})
			}
			if err := store.Photos.Create(ctx, photo); err != nil {
				return nil, fmt.Errorf("create fake photo: %w", err)
			}
			res.Photos++
			res.Comments += len(photo.Comments)
		}
	}
	return res, nil
}
