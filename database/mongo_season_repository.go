package database

import (
	"context"
	"fmt"
	"time"

	"nfl-rankings-go/logging"
	"nfl-rankings-go/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collFranchiseSeasons = "franchise_seasons"
	collYearlyRanks      = "yearly_ranks"
	collYearlyWinPcts    = "yearly_winpct"
)

// MongoSeasonRepository stores the normalized season dataset in MongoDB.
// The dataset is replaced wholesale on every load from the workbook, the
// same way the upstream spreadsheet replaces a season's numbers.
type MongoSeasonRepository struct {
	db     *MongoDB
	logger *logging.Logger
}

// NewMongoSeasonRepository creates a season repository backed by MongoDB
func NewMongoSeasonRepository(db *MongoDB) *MongoSeasonRepository {
	logger := logging.WithPrefix("mongo_season_repo")

	// Unique index on (team, year) enforces the one-row-per-team-per-year
	// contract of the upstream data source.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, name := range []string{collFranchiseSeasons, collYearlyRanks, collYearlyWinPcts} {
		indexModel := mongo.IndexModel{
			Keys:    bson.D{{Key: "team", Value: 1}, {Key: "year", Value: 1}},
			Options: options.Index().SetUnique(true),
		}
		if _, err := db.GetCollection(name).Indexes().CreateOne(ctx, indexModel); err != nil {
			logger.Errorf("Failed to create index on %s: %v", name, err)
		}
	}

	return &MongoSeasonRepository{db: db, logger: logger}
}

func (r *MongoSeasonRepository) replaceAll(ctx context.Context, name string, docs []interface{}) error {
	coll := r.db.GetCollection(name)

	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear %s: %w", name, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", name, err)
	}

	r.logger.Debugf("Replaced %s with %d documents", name, len(docs))
	return nil
}

// ReplaceFranchiseSeasons replaces all Master Sheet rows
func (r *MongoSeasonRepository) ReplaceFranchiseSeasons(ctx context.Context, rows []models.FranchiseSeason) error {
	docs := make([]interface{}, len(rows))
	for i := range rows {
		docs[i] = rows[i]
	}
	return r.replaceAll(ctx, collFranchiseSeasons, docs)
}

// ReplaceYearlyRanks replaces all melted rank-by-year rows
func (r *MongoSeasonRepository) ReplaceYearlyRanks(ctx context.Context, rows []models.YearlyRank) error {
	docs := make([]interface{}, len(rows))
	for i := range rows {
		docs[i] = rows[i]
	}
	return r.replaceAll(ctx, collYearlyRanks, docs)
}

// ReplaceYearlyWinPcts replaces all merged winning-percentage rows
func (r *MongoSeasonRepository) ReplaceYearlyWinPcts(ctx context.Context, rows []models.YearlyWinPct) error {
	docs := make([]interface{}, len(rows))
	for i := range rows {
		docs[i] = rows[i]
	}
	return r.replaceAll(ctx, collYearlyWinPcts, docs)
}

// GetFranchiseSeasons returns all Master Sheet rows
func (r *MongoSeasonRepository) GetFranchiseSeasons(ctx context.Context) ([]models.FranchiseSeason, error) {
	cursor, err := r.db.GetCollection(collFranchiseSeasons).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find franchise seasons: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.FranchiseSeason
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode franchise seasons: %w", err)
	}
	return rows, nil
}

// GetYearlyRanks returns all melted rank-by-year rows
func (r *MongoSeasonRepository) GetYearlyRanks(ctx context.Context) ([]models.YearlyRank, error) {
	cursor, err := r.db.GetCollection(collYearlyRanks).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find yearly ranks: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.YearlyRank
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode yearly ranks: %w", err)
	}
	return rows, nil
}

// GetYearlyWinPcts returns all merged winning-percentage rows
func (r *MongoSeasonRepository) GetYearlyWinPcts(ctx context.Context) ([]models.YearlyWinPct, error) {
	cursor, err := r.db.GetCollection(collYearlyWinPcts).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find yearly winning percentages: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.YearlyWinPct
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode yearly winning percentages: %w", err)
	}
	return rows, nil
}
