package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fridgechef/backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const journalCollection = "journal_entries"

// MongoJournal persists journal entries in MongoDB
type MongoJournal struct {
	client     *mongo.Client
	collection *mongo.Collection
	log        *zap.Logger
}

// NewMongoJournal connects to MongoDB, verifies the connection and makes sure
// the cooked_at index exists.
func NewMongoJournal(ctx context.Context, uri, database string, log *zap.Logger) (*MongoJournal, error) {
	if log == nil {
		log = zap.NewNop()
	}
	logger := log.Named("mongodb")

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", domain.ErrJournalUnavailable, err)
	}

	collection := client.Database(database).Collection(journalCollection)
	_, err = collection.Indexes().CreateOne(connectCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cooked_at", Value: -1}},
		Options: options.Index().SetName("cooked_at_desc"),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create journal index: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", database))

	return &MongoJournal{
		client:     client,
		collection: collection,
		log:        logger,
	}, nil
}

// Save inserts or replaces an entry
func (j *MongoJournal) Save(ctx context.Context, entry *domain.JournalEntry) error {
	if entry == nil || entry.ID == "" {
		return domain.ErrInvalidRequest
	}

	_, err := j.collection.ReplaceOne(ctx, bson.M{"_id": entry.ID}, entry, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}
	return nil
}

// GetByID loads a single entry
func (j *MongoJournal) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	err := j.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrJournalEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entry: %w", err)
	}
	return &entry, nil
}

// List returns up to limit entries, most recently cooked first
func (j *MongoJournal) List(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "cooked_at", Value: -1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := j.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]domain.JournalEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode journal entries: %w", err)
	}
	return entries, nil
}

// Delete removes an entry
func (j *MongoJournal) Delete(ctx context.Context, id string) error {
	result, err := j.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrJournalEntryNotFound
	}
	return nil
}

// Close disconnects from MongoDB
func (j *MongoJournal) Close(ctx context.Context) error {
	j.log.Info("Closing MongoDB connection")
	return j.client.Disconnect(ctx)
}
