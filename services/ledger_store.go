package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nikgav1/calorie-tracking-app/models"
)

const storeTimeout = 10 * time.Second

// LedgerStore persists day documents in the "days" collection. Every
// mutation is a single atomic document update; totals are maintained by
// signed increments, never recomputed on read.
type LedgerStore struct {
	col *mongo.Collection
}

func NewLedgerStore(db *mongo.Database) *LedgerStore {
	return &LedgerStore{col: db.Collection("days")}
}

// EnsureIndexes creates the unique (userId, date) index that makes day
// documents race-safe to create. Call once at startup.
func (s *LedgerStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create days index: %w", err)
	}
	return nil
}

func dayFilter(userID uint, day time.Time) bson.M {
	return bson.M{"userId": userID, "date": day}
}

// totalsInc builds the $inc document applying delta to both the named
// bucket's totals and the day totals.
func totalsInc(meal string, delta models.NutritionTotals) bson.M {
	return bson.M{
		meal + ".totals.ccal":          delta.Calories,
		meal + ".totals.protein":       delta.Protein,
		meal + ".totals.fat":           delta.Fat,
		meal + ".totals.carbohydrates": delta.Carbohydrates,
		"totals.ccal":                  delta.Calories,
		"totals.protein":               delta.Protein,
		"totals.fat":                   delta.Fat,
		"totals.carbohydrates":         delta.Carbohydrates,
	}
}

// EnsureDay idempotently creates the (user, dayStart) document with all four
// buckets zeroed. Existing documents are never touched: the upsert only sets
// fields on insert, and a duplicate-key error from two racing upserts means
// the document already exists, which is all this call promises.
func (s *LedgerStore) EnsureDay(ctx context.Context, userID uint, day time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	_, err := s.col.UpdateOne(ctx,
		dayFilter(userID, day),
		bson.M{"$setOnInsert": models.NewDay(userID, day)},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("ensure day: %w", err)
	}
	return nil
}

func (s *LedgerStore) FetchDay(ctx context.Context, userID uint, day time.Time) (*models.Day, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var d models.Day
	err := s.col.FindOne(ctx, dayFilter(userID, day)).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch day: %w", err)
	}
	return &d, nil
}

func (s *LedgerStore) ListRecentDays(ctx context.Context, userID uint, limit int) ([]models.Day, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	cur, err := s.col.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	var days []models.Day
	if err := cur.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("decode days: %w", err)
	}
	return days, nil
}

// AppendLog atomically pushes the entry onto the bucket's log list and
// increments bucket and day totals by delta. The day document must already
// exist (EnsureDay runs first); otherwise the increments would target
// missing paths.
func (s *LedgerStore) AppendLog(ctx context.Context, userID uint, day time.Time, meal string, entry models.LogEntry, delta models.NutritionTotals) (*models.Day, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	update := bson.M{
		"$push":        bson.M{meal + ".logs": entry},
		"$inc":         totalsInc(meal, delta),
		"$currentDate": bson.M{"updatedAt": true},
	}

	var d models.Day
	err := s.col.FindOneAndUpdate(ctx, dayFilter(userID, day), update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("append log: %w", err)
	}
	return &d, nil
}

// entryGuard matches the entry by id and by the nutrition values it held
// when the caller read it. A concurrent edit or delete in between makes the
// filter miss, so a stale delta is never applied.
func entryGuard(userID uint, day time.Time, meal string, old models.LogEntry) bson.M {
	return bson.M{
		"userId": userID,
		"date":   day,
		meal + ".logs": bson.M{"$elemMatch": bson.M{
			"_id":           old.ID,
			"ccal":          old.Calories,
			"protein":       old.Protein,
			"fat":           old.Fat,
			"carbohydrates": old.Carbohydrates,
		}},
	}
}

// MutateLog atomically overwrites the entry's mutable fields and applies
// delta (new minus old) to bucket and day totals. Returns ErrConflict when
// the entry no longer matches the values it was read with.
func (s *LedgerStore) MutateLog(ctx context.Context, userID uint, day time.Time, meal string, old, updated models.LogEntry, delta models.NutritionTotals) (*models.Day, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			meal + ".logs.$[log].name":          updated.Name,
			meal + ".logs.$[log].ccal":          updated.Calories,
			meal + ".logs.$[log].protein":       updated.Protein,
			meal + ".logs.$[log].fat":           updated.Fat,
			meal + ".logs.$[log].carbohydrates": updated.Carbohydrates,
		},
		"$inc":         totalsInc(meal, delta),
		"$currentDate": bson.M{"updatedAt": true},
	}

	var d models.Day
	err := s.col.FindOneAndUpdate(ctx, entryGuard(userID, day, meal, old), update,
		options.FindOneAndUpdate().
			SetArrayFilters(options.ArrayFilters{Filters: bson.A{bson.M{"log._id": old.ID}}}).
			SetReturnDocument(options.After),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("mutate log: %w", err)
	}
	return &d, nil
}

// RemoveLog atomically pulls the entry from the bucket's log list and applies
// the negated totals. Same conflict guard as MutateLog.
func (s *LedgerStore) RemoveLog(ctx context.Context, userID uint, day time.Time, meal string, old models.LogEntry, negated models.NutritionTotals) (*models.Day, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	update := bson.M{
		"$pull":        bson.M{meal + ".logs": bson.M{"_id": old.ID}},
		"$inc":         totalsInc(meal, negated),
		"$currentDate": bson.M{"updatedAt": true},
	}

	var d models.Day
	err := s.col.FindOneAndUpdate(ctx, entryGuard(userID, day, meal, old), update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("remove log: %w", err)
	}
	return &d, nil
}
