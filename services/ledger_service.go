package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nikgav1/calorie-tracking-app/models"
	"github.com/nikgav1/calorie-tracking-app/utils"
)

const (
	defaultDayLimit = 30
	maxDayLimit     = 365
)

// DayStore is the persistence boundary for day documents. *LedgerStore is
// the Mongo implementation; tests use an in-memory fake.
type DayStore interface {
	EnsureDay(ctx context.Context, userID uint, day time.Time) error
	FetchDay(ctx context.Context, userID uint, day time.Time) (*models.Day, error)
	ListRecentDays(ctx context.Context, userID uint, limit int) ([]models.Day, error)
	AppendLog(ctx context.Context, userID uint, day time.Time, meal string, entry models.LogEntry, delta models.NutritionTotals) (*models.Day, error)
	MutateLog(ctx context.Context, userID uint, day time.Time, meal string, old, updated models.LogEntry, delta models.NutritionTotals) (*models.Day, error)
	RemoveLog(ctx context.Context, userID uint, day time.Time, meal string, old models.LogEntry, negated models.NutritionTotals) (*models.Day, error)
}

// ProfileSource resolves a user's stored UTC offset; nil means unknown.
type ProfileSource interface {
	UTCOffsetMinutes(ctx context.Context, userID uint) (*int, error)
}

// LedgerService implements the food-log operations: day-boundary resolution,
// input coercion, delta computation, and orchestration of the two-phase
// ensure-then-mutate write.
type LedgerService struct {
	store    DayStore
	profiles ProfileSource
	now      func() time.Time
}

func NewLedgerService(store DayStore, profiles ProfileSource) *LedgerService {
	return &LedgerService{store: store, profiles: profiles, now: time.Now}
}

// LogInput is a new food entry as submitted by a client. Numeric fields are
// deliberately untyped: clients send numbers or strings and anything
// non-numeric coerces to zero. Only the name is mandatory.
type LogInput struct {
	Name          string      `json:"name"`
	Calories      interface{} `json:"ccal"`
	Protein       interface{} `json:"protein"`
	Fat           interface{} `json:"fat"`
	Carbohydrates interface{} `json:"carbohydrates"`
	CreatedAt     *time.Time  `json:"createdAt"`
}

// LogUpdate is a partial edit; absent fields keep their stored values.
type LogUpdate struct {
	Name          *string     `json:"name"`
	Calories      interface{} `json:"ccal"`
	Protein       interface{} `json:"protein"`
	Fat           interface{} `json:"fat"`
	Carbohydrates interface{} `json:"carbohydrates"`
}

// dayStart resolves the canonical day key for the request: parse the raw
// date (empty means now), look up the caller's stored offset, normalize.
func (s *LedgerService) dayStart(ctx context.Context, userID uint, rawDate string) (time.Time, error) {
	t := s.now()
	if rawDate != "" {
		parsed, err := utils.ParseFlexibleDate(rawDate)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
		t = parsed
	}

	offset, err := s.profiles.UTCOffsetMinutes(ctx, userID)
	if err != nil {
		return time.Time{}, err
	}
	return utils.NormalizeDayStart(t, offset), nil
}

// LogFood records a new entry under the named meal of the caller's current
// (or supplied) day. EnsureDay commits before AppendLog so the increment
// paths exist. Returns the updated day and the stored entry.
func (s *LedgerService) LogFood(ctx context.Context, userID uint, meal string, in LogInput, rawDate string) (*models.Day, *models.LogEntry, error) {
	if !models.ValidMeal(meal) {
		return nil, nil, ErrInvalidMeal
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, nil, ErrNameRequired
	}

	day, err := s.dayStart(ctx, userID, rawDate)
	if err != nil {
		return nil, nil, err
	}

	createdAt := s.now().UTC()
	if in.CreatedAt != nil {
		createdAt = in.CreatedAt.UTC()
	}
	entry := models.LogEntry{
		ID:            primitive.NewObjectID(),
		Name:          name,
		Calories:      utils.NumberOrZero(in.Calories),
		Protein:       utils.NumberOrZero(in.Protein),
		Fat:           utils.NumberOrZero(in.Fat),
		Carbohydrates: utils.NumberOrZero(in.Carbohydrates),
		CreatedAt:     createdAt,
	}

	if err := s.store.EnsureDay(ctx, userID, day); err != nil {
		return nil, nil, err
	}
	updated, err := s.store.AppendLog(ctx, userID, day, meal, entry, entry.Totals())
	if err != nil {
		return nil, nil, err
	}
	return updated, &entry, nil
}

// findEntry locates the identified entry inside the fetched day.
func findEntry(day *models.Day, meal string, logID primitive.ObjectID) (*models.LogEntry, error) {
	bucket := day.Bucket(meal)
	if bucket == nil {
		return nil, ErrNotFound
	}
	for i := range bucket.Logs {
		if bucket.Logs[i].ID == logID {
			return &bucket.Logs[i], nil
		}
	}
	return nil, ErrNotFound
}

// EditLog applies a partial update to one entry. The totals delta is the
// per-field difference between the new and the previously read values; the
// store's guarded update rejects the write if the entry changed concurrently.
func (s *LedgerService) EditLog(ctx context.Context, userID uint, meal, logID, rawDate string, in LogUpdate) (*models.Day, error) {
	if !models.ValidMeal(meal) {
		return nil, ErrInvalidMeal
	}
	id, err := primitive.ObjectIDFromHex(logID)
	if err != nil {
		return nil, ErrNotFound
	}

	day, err := s.dayStart(ctx, userID, rawDate)
	if err != nil {
		return nil, err
	}
	doc, err := s.store.FetchDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	old, err := findEntry(doc, meal, id)
	if err != nil {
		return nil, err
	}

	updated := *old
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			updated.Name = name
		}
	}
	if in.Calories != nil {
		updated.Calories = utils.NumberOrZero(in.Calories)
	}
	if in.Protein != nil {
		updated.Protein = utils.NumberOrZero(in.Protein)
	}
	if in.Fat != nil {
		updated.Fat = utils.NumberOrZero(in.Fat)
	}
	if in.Carbohydrates != nil {
		updated.Carbohydrates = utils.NumberOrZero(in.Carbohydrates)
	}

	delta := updated.Totals().Sub(old.Totals())
	return s.store.MutateLog(ctx, userID, day, meal, *old, updated, delta)
}

// DeleteLog removes one entry, decrementing bucket and day totals by the
// entry's last-known values. Deleting an already-deleted entry is not-found.
func (s *LedgerService) DeleteLog(ctx context.Context, userID uint, meal, logID, rawDate string) (*models.Day, error) {
	if !models.ValidMeal(meal) {
		return nil, ErrInvalidMeal
	}
	id, err := primitive.ObjectIDFromHex(logID)
	if err != nil {
		return nil, ErrNotFound
	}

	day, err := s.dayStart(ctx, userID, rawDate)
	if err != nil {
		return nil, err
	}
	doc, err := s.store.FetchDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	old, err := findEntry(doc, meal, id)
	if err != nil {
		return nil, err
	}

	return s.store.RemoveLog(ctx, userID, day, meal, *old, old.Totals().Neg())
}

// GetDay returns the caller's day document, or (nil, nil) when no food has
// been logged for that day yet. Absence is a normal state, not an error.
func (s *LedgerService) GetDay(ctx context.Context, userID uint, rawDate string) (*models.Day, error) {
	day, err := s.dayStart(ctx, userID, rawDate)
	if err != nil {
		return nil, err
	}
	doc, err := s.store.FetchDay(ctx, userID, day)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return doc, err
}

// ListDays returns up to limit most recent days, newest first. The limit is
// clamped to [1, 365] with a default of 30.
func (s *LedgerService) ListDays(ctx context.Context, userID uint, limit int) ([]models.Day, error) {
	if limit <= 0 {
		limit = defaultDayLimit
	}
	if limit > maxDayLimit {
		limit = maxDayLimit
	}
	return s.store.ListRecentDays(ctx, userID, limit)
}
