package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/frostbyte/internal/config"
	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

// ReportRepository archives validation reports in MongoDB.
type ReportRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewReportRepository connects to MongoDB and verifies the connection.
func NewReportRepository(ctx context.Context, cfg config.MongoDBConfig) (*ReportRepository, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &ReportRepository{
		client:   client,
		dbName:   cfg.DBName,
		collName: cfg.Collection,
	}

	_, err = repo.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create report index: %w", err)
	}

	return repo, nil
}

func (r *ReportRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveReport stores a validation report.
func (r *ReportRepository) SaveReport(ctx context.Context, report models.ValidationReport) error {
	if _, err := r.collection().InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert validation report: %w", err)
	}
	return nil
}

// ListReports returns the reports of a date, newest first.
func (r *ReportRepository) ListReports(ctx context.Context, date string) ([]models.ValidationReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{"date": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query validation reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := make([]models.ValidationReport, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode validation reports: %w", err)
	}
	return reports, nil
}

// Close closes the MongoDB connection.
func (r *ReportRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
