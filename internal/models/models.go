package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// User is a logged-in RailPick account as stored in the `users` collection.
// All fields are optional in the store; absent fields decode to zero values.
type User struct {
	ID                string     `bson:"_id,omitempty" json:"id"`
	DisplayName       string     `bson:"displayName,omitempty" json:"displayName"`
	Email             string     `bson:"email,omitempty" json:"email"`
	LastLoginProvider string     `bson:"lastLoginProvider,omitempty" json:"lastLoginProvider"`
	LastLogin         *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
}

// UnmarshalBSON decodes field-by-field so a malformed value in one document
// (e.g. a string lastLogin) degrades to the zero value instead of failing
// the whole cursor read.
func (u *User) UnmarshalBSON(data []byte) error {
	elems, err := bson.Raw(data).Elements()
	if err != nil {
		return err
	}
	for _, e := range elems {
		switch e.Key() {
		case "_id":
			u.ID = stringID(e.Value())
		case "displayName":
			if s, ok := e.Value().StringValueOK(); ok {
				u.DisplayName = s
			}
		case "email":
			if s, ok := e.Value().StringValueOK(); ok {
				u.Email = s
			}
		case "lastLoginProvider":
			if s, ok := e.Value().StringValueOK(); ok {
				u.LastLoginProvider = s
			}
		case "lastLogin":
			u.LastLogin = timeValue(e.Value())
		}
	}
	return nil
}

// Device is one registered handset belonging to a user.
type Device struct {
	ID          string `bson:"_id,omitempty" json:"id"`
	UserID      string `bson:"userId" json:"userId"`
	DeviceModel string `bson:"deviceModel,omitempty" json:"deviceModel"`
}

// Ticket is one purchased reservation belonging to a user.
type Ticket struct {
	ID               string `bson:"_id,omitempty" json:"id"`
	UserID           string `bson:"userId" json:"userId"`
	DepartureStation string `bson:"departureStation,omitempty" json:"departureStation"`
	ArrivalStation   string `bson:"arrivalStation,omitempty" json:"arrivalStation"`
	TrainType        string `bson:"trainType,omitempty" json:"trainType"`
	SeatClass        string `bson:"seatClass,omitempty" json:"seatClass"`
	ServiceType      string `bson:"serviceType,omitempty" json:"serviceType"`
}

// DeviceTrial tracks an anonymous trial install, independent of any user.
// Timestamps are pointers: a document may carry none of them, and a
// malformed value decodes to nil so the record only drops out of the
// time-based aggregates, never the whole bundle.
type DeviceTrial struct {
	ID               string     `bson:"_id,omitempty" json:"id"`
	LastSeen         *time.Time `bson:"last_seen,omitempty" json:"last_seen,omitempty"`
	CreatedAt        *time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	FirstInstallTime *time.Time `bson:"first_install_time,omitempty" json:"first_install_time,omitempty"`
}

// UnmarshalBSON decodes field-by-field; non-datetime timestamp values are
// left nil rather than turning into a decode error for the whole query.
func (t *DeviceTrial) UnmarshalBSON(data []byte) error {
	elems, err := bson.Raw(data).Elements()
	if err != nil {
		return err
	}
	for _, e := range elems {
		switch e.Key() {
		case "_id":
			t.ID = stringID(e.Value())
		case "last_seen":
			t.LastSeen = timeValue(e.Value())
		case "created_at":
			t.CreatedAt = timeValue(e.Value())
		case "first_install_time":
			t.FirstInstallTime = timeValue(e.Value())
		}
	}
	return nil
}

// ConsentLog records one smart-reserve consent decision.
type ConsentLog struct {
	ID                 string `bson:"_id,omitempty" json:"id"`
	AutoReserveConsent bool   `bson:"auto_reserve_consent" json:"auto_reserve_consent"`
}

// stringID reads a document key that may be stored as a string or ObjectID.
func stringID(v bson.RawValue) string {
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	return ""
}

// timeValue returns the value as UTC time when it is a BSON datetime,
// nil for anything else (missing, string, number, ...).
func timeValue(v bson.RawValue) *time.Time {
	if t, ok := v.TimeOK(); ok {
		t = t.UTC()
		return &t
	}
	return nil
}
