// File: database/repository/user/user_mongo.go
package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wrenchly/database/repository"
	"wrenchly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository manages customer profile documents and invitations.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id string, set bson.M) error
	// CreateWithInvitation writes the profile and its invitation in one
	// transaction so a failed invitation never leaves an orphaned account.
	CreateWithInvitation(ctx context.Context, u *models.User, inv *models.CustomerInvitation, v *models.Vehicle) error
}

type mongoUserRepo struct {
	userColl    *mongo.Collection
	inviteColl  *mongo.Collection
	vehicleColl *mongo.Collection
	client      *mongo.Client
}

// NewMongoUserRepo constructs a MongoDB-backed UserRepository.
func NewMongoUserRepo(db *mongo.Database) UserRepository {
	return &mongoUserRepo{
		userColl:    db.Collection("users"),
		inviteColl:  db.Collection("customer_invitations"),
		vehicleColl: db.Collection("vehicles"),
		client:      db.Client(),
	}
}

func (r *mongoUserRepo) Create(ctx context.Context, u *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.userColl.InsertOne(ctx, u); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *mongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var u models.User
	err := r.userColl.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &u, nil
}

func (r *mongoUserRepo) Update(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	res, err := r.userColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepo) CreateWithInvitation(ctx context.Context, u *models.User, inv *models.CustomerInvitation, v *models.Vehicle) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.userColl.InsertOne(sc, u); err != nil {
			return fmt.Errorf("insert user failed: %w", err)
		}
		if v != nil {
			if _, err := r.vehicleColl.InsertOne(sc, v); err != nil {
				return fmt.Errorf("insert vehicle failed: %w", err)
			}
		}
		if inv != nil {
			if _, err := r.inviteColl.InsertOne(sc, inv); err != nil {
				return fmt.Errorf("insert invitation failed: %w", err)
			}
		}
		return nil
	}

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
