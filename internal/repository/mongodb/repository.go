package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jwhitcraft/precast-tracker/internal/domain/models"
)

// Collection names, one per entity.
const (
	collProductionDays = "production_days"
	collMixDesigns     = "mix_designs"
	collRequirements   = "mix_design_requirements"
	collJobs           = "jobs"
	collBeds           = "beds"
	collPours          = "pours"
	collMixBatches     = "mix_batches"
	collPlacements     = "placements"
	collDeliveries     = "deliveries"
	collTestSets       = "test_sets"
	collTestSetDays    = "test_set_days"
	collTestCylinders  = "test_cylinders"
)

// Repository defines the storage operations the services depend on. The
// computation layer never queries past LoadSnapshot; writes go through
// SaveTestDayResult and InsertSeedData.
type Repository interface {
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)
	SaveTestDayResult(ctx context.Context, day *models.TestSetDay, cylinders []*models.TestCylinder) error
	InsertSeedData(ctx context.Context, data models.SnapshotData) error
}

// MongoDBRepository implements Repository against MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{client: client, dbName: dbName}, nil
}

// LoadSnapshot reads every collection and links the flat records into the
// materialized graph the services compute over. Each collection is read in id
// order so derived output (cylinder break columns in particular) is stable
// across loads.
func (r *MongoDBRepository) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	db := r.client.Database(r.dbName)

	var data models.SnapshotData
	var err error

	if data.ProductionDays, err = loadAll[models.ProductionDay](ctx, db, collProductionDays, "production_day_id"); err != nil {
		return nil, err
	}
	if data.MixDesigns, err = loadAll[models.MixDesign](ctx, db, collMixDesigns, "mix_design_id"); err != nil {
		return nil, err
	}
	if data.Requirements, err = loadAll[models.MixDesignRequirement](ctx, db, collRequirements, "mix_design_requirement_id"); err != nil {
		return nil, err
	}
	if data.Jobs, err = loadAll[models.Job](ctx, db, collJobs, "job_id"); err != nil {
		return nil, err
	}
	if data.Beds, err = loadAll[models.Bed](ctx, db, collBeds, "bed_id"); err != nil {
		return nil, err
	}
	if data.Pours, err = loadAll[models.Pour](ctx, db, collPours, "pour_id"); err != nil {
		return nil, err
	}
	if data.MixBatches, err = loadAll[models.MixBatch](ctx, db, collMixBatches, "mix_batch_id"); err != nil {
		return nil, err
	}
	if data.Placements, err = loadAll[models.Placement](ctx, db, collPlacements, "placement_id"); err != nil {
		return nil, err
	}
	if data.Deliveries, err = loadAll[models.Delivery](ctx, db, collDeliveries, "delivery_id"); err != nil {
		return nil, err
	}
	if data.TestSets, err = loadAll[models.TestSet](ctx, db, collTestSets, "test_set_id"); err != nil {
		return nil, err
	}
	if data.TestSetDays, err = loadAll[models.TestSetDay](ctx, db, collTestSetDays, "test_set_day_id"); err != nil {
		return nil, err
	}
	if data.TestCylinders, err = loadAll[models.TestCylinder](ctx, db, collTestCylinders, "test_cylinder_id"); err != nil {
		return nil, err
	}

	return models.NewSnapshot(data), nil
}

// SaveTestDayResult persists a recorded test: the day's tested date and
// comments plus the break value of every supplied cylinder. The writes run
// ordered; any failure aborts the remainder.
func (r *MongoDBRepository) SaveTestDayResult(ctx context.Context, day *models.TestSetDay, cylinders []*models.TestCylinder) error {
	db := r.client.Database(r.dbName)

	update := bson.M{"$set": bson.M{
		"date_tested": day.DateTested,
		"comments":    day.Comments,
	}}
	res, err := db.Collection(collTestSetDays).UpdateOne(ctx, bson.M{"test_set_day_id": day.TestSetDayID}, update)
	if err != nil {
		return fmt.Errorf("update test set day %d: %w", day.TestSetDayID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("test set day %d: %w", day.TestSetDayID, models.ErrNotFound)
	}

	for _, cyl := range cylinders {
		filter := bson.M{"test_cylinder_id": cyl.TestCylinderID}
		set := bson.M{"$set": bson.M{"break_psi": cyl.BreakPsi}}
		if _, err := db.Collection(collTestCylinders).UpdateOne(ctx, filter, set); err != nil {
			return fmt.Errorf("update test cylinder %d: %w", cyl.TestCylinderID, err)
		}
	}

	return nil
}

// InsertSeedData bulk-inserts a freshly ingested entity graph.
func (r *MongoDBRepository) InsertSeedData(ctx context.Context, data models.SnapshotData) error {
	db := r.client.Database(r.dbName)

	if err := insertAll(ctx, db, collProductionDays, data.ProductionDays); err != nil {
		return err
	}
	if err := insertAll(ctx, db, collMixDesigns, data.MixDesigns); err != nil {
		return err
	}
	if err := insertAll(ctx, db, collRequirements, data.Requirements); err != nil {
		return err
	}
	if err := insertAll(ctx, db, collJobs, data.Jobs); err != nil {
		return err
	}
	if err := insertAll(ctx, db, collBeds, data.Beds); err != nil {
		return err
	}
	if err := insertAll(ctx, db, collPours, data.Pours); err != nil {
		return err
	}
	if err := insertAll(ctx, db, collMixBatches, data.MixBatches); err != nil {
		return err
	}
	if err := insertAll(ctx, db, collPlacements, data.Placements); err != nil {
		return err
	}
	if err := insertAll(ctx, db, collDeliveries, data.Deliveries); err != nil {
		return err
	}
	if err := insertAll(ctx, db, collTestSets, data.TestSets); err != nil {
		return err
	}
	if err := insertAll(ctx, db, collTestSetDays, data.TestSetDays); err != nil {
		return err
	}
	return insertAll(ctx, db, collTestCylinders, data.TestCylinders)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func loadAll[T any](ctx context.Context, db *mongo.Database, collection, sortField string) ([]*T, error) {
	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: 1}})
	cursor, err := db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}

	var records []*T
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}
	return records, nil
}

func insertAll[T any](ctx context.Context, db *mongo.Database, collection string, records []*T) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, len(records))
	for i, rec := range records {
		docs[i] = rec
	}
	if _, err := db.Collection(collection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", collection, err)
	}
	return nil
}
