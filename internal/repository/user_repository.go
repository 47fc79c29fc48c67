package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// secretFields are excluded from every read unless the caller explicitly
// asks for them. They never appear in a default projection and therefore
// cannot leak through a serialization path by accident.
var secretFields = []string{
	"password",
	"otp",
	"otpExpires",
	"resetPasswordToken",
	"resetPasswordExpires",
}

// UserRepo persists user documents in the `users` collection.
type UserRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection("users")}
}

// EnsureIndexes creates the unique email index. Safe to call on every
// startup; index creation is idempotent.
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new user. The email is normalized to lower case and the
// password is hashed here, at the write boundary, so the hashing contract
// is visible at the call site. A duplicate email maps to ErrEmailExists.
// The inserted id and timestamps are written back into u.
func (r *UserRepo) Create(ctx context.Context, u *model.User, bcryptCost int) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(u.Password, bcryptCost)
	if err != nil {
		return err
	}
	u.Password = hash
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// FindByEmail looks a user up by normalized email. Secret fields are
// projected away unless includeSecrets is set. Returns (nil, nil) when no
// user matches.
func (r *UserRepo) FindByEmail(ctx context.Context, email string, includeSecrets bool) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.findOne(ctx, bson.M{"email": email}, includeSecrets)
}

// FindByID looks a user up by hex object id. A malformed id returns
// ErrBadID; an unknown id returns (nil, nil).
func (r *UserRepo) FindByID(ctx context.Context, id string, includeSecrets bool) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrBadID
	}
	return r.findOne(ctx, bson.M{"_id": oid}, includeSecrets)
}

// FindByResetToken returns the user holding a matching, unexpired reset
// token, secrets included, or (nil, nil) when the token is unknown or past
// its expiry.
func (r *UserRepo) FindByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	filter := bson.M{
		"resetPasswordToken":   token,
		"resetPasswordExpires": bson.M{"$gt": now},
	}
	return r.findOne(ctx, filter, true)
}

// SetOTP overwrites the pending OTP pair on a user. A second signin during
// OTP pendency simply replaces the previous code: last write wins.
func (r *UserRepo) SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expires time.Time) error {
	return r.update(ctx, id, bson.M{
		"$set": bson.M{"otp": otp, "otpExpires": expires, "updatedAt": time.Now().UTC()},
	})
}

// ClearOTPAndMarkVerified consumes a verified OTP: both OTP fields are
// unset and the email is marked verified in a single update.
func (r *UserRepo) ClearOTPAndMarkVerified(ctx context.Context, id primitive.ObjectID) error {
	return r.update(ctx, id, bson.M{
		"$set":   bson.M{"isEmailVerified": true, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"otp": "", "otpExpires": ""},
	})
}

// SetResetToken stores the password-reset pair on a user.
func (r *UserRepo) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error {
	return r.update(ctx, id, bson.M{
		"$set": bson.M{
			"resetPasswordToken":   token,
			"resetPasswordExpires": expires,
			"updatedAt":            time.Now().UTC(),
		},
	})
}

// ResetPassword hashes and stores a new password and clears the reset-token
// pair in the same update, so a consumed token can never grant a second
// password change.
func (r *UserRepo) ResetPassword(ctx context.Context, id primitive.ObjectID, newPassword string, bcryptCost int) error {
	hash, err := utils.HashPassword(newPassword, bcryptCost)
	if err != nil {
		return err
	}
	return r.update(ctx, id, bson.M{
		"$set":   bson.M{"password": hash, "updatedAt": time.Now().UTC()},
		"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpires": ""},
	})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M, includeSecrets bool) (*model.User, error) {
	opts := options.FindOne()
	if !includeSecrets {
		proj := bson.M{}
		for _, f := range secretFields {
			proj[f] = 0
		}
		opts.SetProjection(proj)
	}
	var u model.User
	err := r.col.FindOne(ctx, filter, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	_, err := r.col.UpdateByID(ctx, id, update)
	return err
}
