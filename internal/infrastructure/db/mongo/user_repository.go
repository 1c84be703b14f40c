package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hirepath/jobportal-api/internal/core/domain"
)

const userCollection = "users"

// MongoUserRepository implements ports.UserRepository over the users
// collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

type mongoProfile struct {
	ProfilePhoto       string   `bson:"profile_photo"`
	Bio                string   `bson:"bio,omitempty"`
	Skills             []string `bson:"skills,omitempty"`
	Resume             string   `bson:"resume,omitempty"`
	ResumeOriginalName string   `bson:"resume_originalname,omitempty"`
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Fullname     string             `bson:"fullname"`
	Email        string             `bson:"email"`
	PhoneNumber  string             `bson:"phone_number"`
	Aadhaar      string             `bson:"adharcard"`
	PAN          string             `bson:"pancard"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Profile      mongoProfile       `bson:"profile"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

// EnsureIndexes creates unique indexes on email, adharcard and pancard.
// The application performs check-then-act uniqueness lookups with no
// transactional guard; these indexes are the storage-level backstop that
// makes a racing duplicate insert fail instead of succeeding twice.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "adharcard", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "pancard", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := toMongoUser(user)
	doc.ID = primitive.NilObjectID

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert user: unexpected inserted id type %T", res.InsertedID)
	}

	created := *user
	created.ID = oid.Hex()
	return &created, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByAadhaar(ctx context.Context, aadhaar string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"adharcard": aadhaar})
}

func (r *MongoUserRepository) FindByPAN(ctx context.Context, pan string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"pancard": pan})
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	doc := toMongoUser(user)
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromMongoUser(&mu), nil
}

func toMongoUser(user *domain.User) mongoUser {
	return mongoUser{
		Fullname:     user.Fullname,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		Aadhaar:      user.Aadhaar,
		PAN:          user.PAN,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Profile: mongoProfile{
			ProfilePhoto:       user.Profile.ProfilePhoto,
			Bio:                user.Profile.Bio,
			Skills:             user.Profile.Skills,
			Resume:             user.Profile.Resume,
			ResumeOriginalName: user.Profile.ResumeOriginalName,
		},
		CreatedAt: user.CreatedAt.Unix(),
		UpdatedAt: user.UpdatedAt.Unix(),
	}
}

func fromMongoUser(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		Fullname:     mu.Fullname,
		Email:        mu.Email,
		PhoneNumber:  mu.PhoneNumber,
		Aadhaar:      mu.Aadhaar,
		PAN:          mu.PAN,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		Profile: domain.Profile{
			ProfilePhoto:       mu.Profile.ProfilePhoto,
			Bio:                mu.Profile.Bio,
			Skills:             mu.Profile.Skills,
			Resume:             mu.Profile.Resume,
			ResumeOriginalName: mu.Profile.ResumeOriginalName,
		},
		CreatedAt: unixToTime(mu.CreatedAt),
		UpdatedAt: unixToTime(mu.UpdatedAt),
	}
}
