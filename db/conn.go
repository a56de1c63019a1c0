// Package db contains everything related to MongoDB
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// New connects to MongoDB, verifies the connection with a ping and
// makes sure the indexes the queries rely on exist. The returned store
// is created once at startup and shared by every handler.
func New(ctx context.Context) (*Mongo, error) {
	opts := options.Client().
		ApplyURI(viper.GetString("mongo.uri")).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB, %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB, %w", err)
	}

	m := &Mongo{
		client: client,
		users:  client.Database(viper.GetString("mongo.database")).Collection("users"),
	}

	if err := m.createIndexes(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Mongo) createIndexes(ctx context.Context) error {
	// Usernames and emails are looked up on almost every request. Neither
	// index is unique: abandoned unverified sign-ups may share a username
	// with a later verified one, uniqueness among verified users is
	// enforced by the registration flow.
	models := []mongo.IndexModel{
		{Keys: map[string]int{"username": 1}},
		{Keys: map[string]int{"email": 1}},
	}

	if _, err := m.users.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create user indexes, %w", err)
	}

	return nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
