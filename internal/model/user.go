package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DisplayPicture stores an uploaded profile image inline on the user
// document. The raw bytes never leave the display-picture endpoint; every
// other serialization path replaces them with a retrieval URL.
type DisplayPicture struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"contentType"`
}

// User represents a registered user as stored in the `users` collection.
// The password and the two secret pairs (otp/otpExpires and
// resetPasswordToken/resetPasswordExpires) are excluded from default reads
// by the repository projection and are never serialized; external callers
// only ever see the PublicUser view.
//
// OTP and OTPExpires are both-or-neither set, and likewise for the reset
// token pair.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty"`
	Name                 string             `bson:"name"`
	Email                string             `bson:"email"`
	Password             string             `bson:"password,omitempty"`
	IsEmailVerified      bool               `bson:"isEmailVerified"`
	Phone                string             `bson:"phone,omitempty"`
	Address              string             `bson:"address,omitempty"`
	Country              string             `bson:"country,omitempty"`
	DisplayPicture       *DisplayPicture    `bson:"displayPicture,omitempty"`
	OTP                  string             `bson:"otp,omitempty"`
	OTPExpires           *time.Time         `bson:"otpExpires,omitempty"`
	ResetPasswordToken   string             `bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpires *time.Time         `bson:"resetPasswordExpires,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt"`
}

// PictureRef is the external representation of a stored display picture:
// a retrieval URL plus the content type, never the raw bytes.
type PictureRef struct {
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
}

// PublicUser is the externally visible projection of a User. It carries no
// password, OTP or reset-token material under any code path.
type PublicUser struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	IsEmailVerified bool        `json:"isEmailVerified"`
	Phone           string      `json:"phone,omitempty"`
	Address         string      `json:"address,omitempty"`
	Country         string      `json:"country,omitempty"`
	DisplayPicture  *PictureRef `json:"displayPicture,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// Public returns the serializable view of the user. A stored image payload
// is rewritten to its retrieval URL under baseURL.
func (u *User) Public(baseURL string) PublicUser {
	p := PublicUser{
		ID:              u.ID.Hex(),
		Name:            u.Name,
		Email:           u.Email,
		IsEmailVerified: u.IsEmailVerified,
		Phone:           u.Phone,
		Address:         u.Address,
		Country:         u.Country,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if u.DisplayPicture != nil && len(u.DisplayPicture.Data) > 0 {
		p.DisplayPicture = &PictureRef{
			URL:         baseURL + "/api/auth/display-picture/" + u.ID.Hex(),
			ContentType: u.DisplayPicture.ContentType,
		}
	}
	return p
}
