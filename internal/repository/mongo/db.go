package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names match the relational table names so records migrate
// between the two stores without renaming.
const (
	PatientsCollection         = "Patients"
	HealthConditionsCollection = "Health_Conditions"
	LifestyleFactorsCollection = "Lifestyle_Factors"
	HealthMetricsCollection    = "Health_Metrics"
	HealthcareAccessCollection = "Healthcare_Access"
)

// NewDB connects a shared client and returns a handle on the named database.
// The driver pools connections internally; one client serves all requests.
func NewDB(ctx context.Context, uri, name string) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(name), nil
}

// Ping reports store reachability for health checks.
func Ping(ctx context.Context, db *mongo.Database) error {
	return db.Client().Ping(ctx, readpref.Primary())
}
