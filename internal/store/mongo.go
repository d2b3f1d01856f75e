package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/railpick/railpick/backend/dashboard-service/internal/models"
)

// Collection names in the railpick database. The mobile app's per-user
// subcollections are flattened into top-level collections keyed by userId.
const (
	colUsers         = "users"
	colDevices       = "devices"
	colTickets       = "tickets"
	colDeviceTrials  = "device_trials"
	colConsentLogs   = "consent_logs"
	colEmailMappings = "email_mappings"
)

// MongoReader implements Reader against a MongoDB database.
type MongoReader struct {
	db *mongo.Database
}

func NewMongoReader(db *mongo.Database) *MongoReader {
	return &MongoReader{db: db}
}

func (r *MongoReader) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := r.findAll(ctx, colUsers, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoReader) ListDevices(ctx context.Context, userID string) ([]models.Device, error) {
	var out []models.Device
	if err := r.find(ctx, colDevices, bson.M{"userId": userID}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoReader) ListTickets(ctx context.Context, userID string) ([]models.Ticket, error) {
	var out []models.Ticket
	if err := r.find(ctx, colTickets, bson.M{"userId": userID}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoReader) ListDeviceTrials(ctx context.Context) ([]models.DeviceTrial, error) {
	var out []models.DeviceTrial
	if err := r.findAll(ctx, colDeviceTrials, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoReader) ListConsentLogs(ctx context.Context) ([]models.ConsentLog, error) {
	var out []models.ConsentLog
	if err := r.findAll(ctx, colConsentLogs, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoReader) CountEmailMappings(ctx context.Context) (int64, error) {
	n, err := r.db.Collection(colEmailMappings).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: count %s: %v", ErrStoreUnavailable, colEmailMappings, err)
	}
	return n, nil
}

func (r *MongoReader) findAll(ctx context.Context, col string, out interface{}) error {
	return r.find(ctx, col, bson.M{}, out)
}

func (r *MongoReader) find(ctx context.Context, col string, filter bson.M, out interface{}) error {
	cur, err := r.db.Collection(col).Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("%w: find %s: %v", ErrStoreUnavailable, col, err)
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrStoreUnavailable, col, err)
	}
	return nil
}
