package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/gatekeeper/pkg/auth"
)

const usersCollection = "users"

// userDoc is the persisted shape of a user record. OTP and password-change
// fields are pointers so that cleared values drop out of the document
// entirely instead of storing zero timestamps.
type userDoc struct {
	ID                string     `bson:"_id"`
	Email             string     `bson:"email"`
	Name              string     `bson:"name,omitempty"`
	PasswordHash      []byte     `bson:"password_hash"`
	OTPHash           string     `bson:"otp_hash,omitempty"`
	OTPExpiresAt      *time.Time `bson:"otp_expires_at,omitempty"`
	Active            bool       `bson:"active"`
	PasswordChangedAt *time.Time `bson:"password_changed_at,omitempty"`
	CreatedAt         time.Time  `bson:"created_at"`
}

func docFromUser(u *auth.User) userDoc {
	doc := userDoc{
		ID:           u.ID.String(),
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		OTPHash:      u.OTPHash,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
	}
	if !u.OTPExpiresAt.IsZero() {
		t := u.OTPExpiresAt
		doc.OTPExpiresAt = &t
	}
	if !u.PasswordChangedAt.IsZero() {
		t := u.PasswordChangedAt
		doc.PasswordChangedAt = &t
	}
	return doc
}

func userFromDoc(doc userDoc) (*auth.User, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("malformed user id %q: %w", doc.ID, err)
	}

	u := &auth.User{
		ID:           id,
		Email:        doc.Email,
		Name:         doc.Name,
		PasswordHash: doc.PasswordHash,
		OTPHash:      doc.OTPHash,
		Active:       doc.Active,
		CreatedAt:    doc.CreatedAt,
	}
	if doc.OTPExpiresAt != nil {
		u.OTPExpiresAt = *doc.OTPExpiresAt
	}
	if doc.PasswordChangedAt != nil {
		u.PasswordChangedAt = *doc.PasswordChangedAt
	}
	return u, nil
}

// MongoStorage implements auth.UserStorage on a MongoDB collection.
type MongoStorage struct {
	col *mongo.Collection
}

// NewMongoStorage creates the user store on the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{col: db.Collection(usersCollection)}
}

// EnsureIndexes creates the indexes the store relies on: the unique email
// index backs duplicate detection on CreateUser.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "otp_hash", Value: 1}},
			Options: options.Index().SetPartialFilterExpression(
				bson.D{{Key: "otp_hash", Value: bson.D{{Key: "$exists", Value: true}}}},
			),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

func (s *MongoStorage) CreateUser(ctx context.Context, u *auth.User) error {
	_, err := s.col.InsertOne(ctx, docFromUser(u))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *MongoStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return s.findOne(ctx, bson.M{"_id": id.String()})
}

func (s *MongoStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *MongoStorage) GetUserByOTPHash(ctx context.Context, hash string, now time.Time) (*auth.User, error) {
	if hash == "" {
		return nil, auth.ErrUserNotFound
	}
	return s.findOne(ctx, bson.M{
		"otp_hash":       hash,
		"otp_expires_at": bson.M{"$gt": now},
	})
}

func (s *MongoStorage) UpdateUser(ctx context.Context, u *auth.User) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": u.ID.String()}, docFromUser(u))
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (s *MongoStorage) findOne(ctx context.Context, filter bson.M) (*auth.User, error) {
	var doc userDoc
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return userFromDoc(doc)
}

var _ auth.UserStorage = (*MongoStorage)(nil)
