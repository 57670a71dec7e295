// Package mongo implements a user backend on mongodb.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zlitery/wordgrid/db"
	"github.com/zlitery/wordgrid/db/user"
)

const (
	databaseName       = "wordgrid-db"
	usersCollection    = "users"
	countersCollection = "counters"
	idField            = "_id"
	seqField           = "seq"
	userIDField        = "user_id"
	usernameField      = "username"
	emailField         = "email"
	passwordHashField  = "password_hash"
	createdAtField     = "created_at"
)

// UserBackend manages users in a mongodb collection.
type UserBackend struct {
	users    *mongo.Collection
	counters *mongo.Collection
	timeFunc func() int64
	db.Config
}

// NewUserBackend connects to the mongodb server at the url and creates a backend on its users collection.
func NewUserBackend(ctx context.Context, cfg db.Config, databaseURL string, timeFunc func() int64) (*UserBackend, error) {
	if timeFunc == nil {
		return nil, fmt.Errorf("creating mongo user backend: time func required")
	}
	clientOptions := options.Client()
	clientOptions.ApplyURI(databaseURL)
	ctx, cancelFunc := context.WithTimeout(ctx, cfg.QueryPeriod)
	defer cancelFunc()
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	database := client.Database(databaseName)
	ub := UserBackend{
		users:    database.Collection(usersCollection),
		counters: database.Collection(countersCollection),
		timeFunc: timeFunc,
		Config:   cfg,
	}
	return &ub, nil
}

// Setup initializes the backend with unique indexes on usernames and emails.
func (ub *UserBackend) Setup(ctx context.Context) error {
	indexOptions := options.Index()
	indexOptions.SetUnique(true)
	models := []mongo.IndexModel{
		{
			Keys:    d(e(usernameField, 1)),
			Options: indexOptions,
		},
		{
			Keys:    d(e(emailField, 1)),
			Options: indexOptions,
		},
	}
	ctx, cancelFunc := context.WithTimeout(ctx, ub.QueryPeriod)
	defer cancelFunc()
	if _, err := ub.users.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("creating unique user indexes: %w", err)
	}
	return nil
}

// Create stores the user, assigning the next id from the counters collection.
func (ub *UserBackend) Create(ctx context.Context, u user.User) (*user.User, error) {
	id, err := ub.nextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	u.ID = id
	u.CreatedAt = ub.timeFunc()
	document := d(
		e(userIDField, u.ID),
		e(usernameField, u.Username),
		e(emailField, u.Email),
		e(passwordHashField, u.PasswordHash),
		e(createdAtField, u.CreatedAt),
	)
	ctx, cancelFunc := context.WithTimeout(ctx, ub.QueryPeriod)
	defer cancelFunc()
	if _, err := ub.users.InsertOne(ctx, document); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &u, nil
}

// Read returns the user with the username.
func (ub *UserBackend) Read(ctx context.Context, username string) (*user.User, error) {
	filter := d(e(usernameField, username))
	ctx, cancelFunc := context.WithTimeout(ctx, ub.QueryPeriod)
	defer cancelFunc()
	result := ub.users.FindOne(ctx, filter)
	var document struct {
		UserID       int64  `bson:"user_id"`
		Username     string `bson:"username"`
		Email        string `bson:"email"`
		PasswordHash string `bson:"password_hash"`
		CreatedAt    int64  `bson:"created_at"`
	}
	if err := result.Decode(&document); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, user.ErrIncorrectLogin
		}
		return nil, fmt.Errorf("reading user: %w", err)
	}
	u := user.User{
		ID:           document.UserID,
		Username:     document.Username,
		Email:        document.Email,
		PasswordHash: document.PasswordHash,
		CreatedAt:    document.CreatedAt,
	}
	return &u, nil
}

// nextID atomically increments and returns the user id counter.
func (ub *UserBackend) nextID(ctx context.Context) (int64, error) {
	filter := d(e(idField, usersCollection))
	update := d(e("$inc", d(e(seqField, int64(1)))))
	findOptions := options.FindOneAndUpdate()
	findOptions.SetUpsert(true)
	findOptions.SetReturnDocument(options.After)
	ctx, cancelFunc := context.WithTimeout(ctx, ub.QueryPeriod)
	defer cancelFunc()
	result := ub.counters.FindOneAndUpdate(ctx, filter, update, findOptions)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := result.Decode(&counter); err != nil {
		return 0, fmt.Errorf("incrementing user id counter: %w", err)
	}
	return counter.Seq, nil
}

// d is a helper function to create bson.D elements.
func d(e ...bson.E) bson.D {
	return bson.D(e)
}

// e is a helper function to create bson.E elements.
func e(key string, value interface{}) bson.E {
	return bson.E{Key: key, Value: value}
}
