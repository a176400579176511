package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnacks    = "snacks"
)

// MealNames lists the four buckets in display order.
var MealNames = []string{MealBreakfast, MealLunch, MealDinner, MealSnacks}

func ValidMeal(meal string) bool {
	switch meal {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return true
	}
	return false
}

// NutritionTotals is the cached sum of calorie and macro fields, kept on
// every meal bucket and on the day itself.
type NutritionTotals struct {
	Calories      float64 `bson:"ccal" json:"ccal"`
	Protein       float64 `bson:"protein" json:"protein"`
	Fat           float64 `bson:"fat" json:"fat"`
	Carbohydrates float64 `bson:"carbohydrates" json:"carbohydrates"`
}

func (t NutritionTotals) Add(o NutritionTotals) NutritionTotals {
	return NutritionTotals{
		Calories:      t.Calories + o.Calories,
		Protein:       t.Protein + o.Protein,
		Fat:           t.Fat + o.Fat,
		Carbohydrates: t.Carbohydrates + o.Carbohydrates,
	}
}

func (t NutritionTotals) Sub(o NutritionTotals) NutritionTotals {
	return NutritionTotals{
		Calories:      t.Calories - o.Calories,
		Protein:       t.Protein - o.Protein,
		Fat:           t.Fat - o.Fat,
		Carbohydrates: t.Carbohydrates - o.Carbohydrates,
	}
}

func (t NutritionTotals) Neg() NutritionTotals {
	return NutritionTotals{}.Sub(t)
}

// LogEntry is one recorded food item inside a meal bucket.
type LogEntry struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Calories      float64            `bson:"ccal" json:"ccal"`
	Protein       float64            `bson:"protein" json:"protein"`
	Fat           float64            `bson:"fat" json:"fat"`
	Carbohydrates float64            `bson:"carbohydrates" json:"carbohydrates"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

func (e LogEntry) Totals() NutritionTotals {
	return NutritionTotals{
		Calories:      e.Calories,
		Protein:       e.Protein,
		Fat:           e.Fat,
		Carbohydrates: e.Carbohydrates,
	}
}

// MealBucket holds a meal's entries in insertion order plus their cached sums.
type MealBucket struct {
	Logs   []LogEntry      `bson:"logs" json:"logs"`
	Totals NutritionTotals `bson:"totals" json:"totals"`
}

// Day is the aggregate ledger document for one user's one local calendar day.
// Date is the normalized day-start instant; (userId, date) is unique.
type Day struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    uint               `bson:"userId" json:"userId"`
	Date      time.Time          `bson:"date" json:"date"`
	Breakfast MealBucket         `bson:"breakfast" json:"breakfast"`
	Lunch     MealBucket         `bson:"lunch" json:"lunch"`
	Dinner    MealBucket         `bson:"dinner" json:"dinner"`
	Snacks    MealBucket         `bson:"snacks" json:"snacks"`
	Totals    NutritionTotals    `bson:"totals" json:"totals"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewDay returns an empty day with all four buckets initialized, so that
// nested totals paths exist as numeric zeros before any increment targets
// them.
func NewDay(userID uint, date time.Time) *Day {
	now := time.Now().UTC()
	empty := func() MealBucket { return MealBucket{Logs: []LogEntry{}} }
	return &Day{
		UserID:    userID,
		Date:      date,
		Breakfast: empty(),
		Lunch:     empty(),
		Dinner:    empty(),
		Snacks:    empty(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Bucket returns the named meal bucket, or nil for an unknown meal.
func (d *Day) Bucket(meal string) *MealBucket {
	switch meal {
	case MealBreakfast:
		return &d.Breakfast
	case MealLunch:
		return &d.Lunch
	case MealDinner:
		return &d.Dinner
	case MealSnacks:
		return &d.Snacks
	}
	return nil
}

// RecalcBucketTotals recomputes a bucket's cached totals from its entries.
// The write path maintains totals incrementally; this is for initial
// construction and reconciliation.
func RecalcBucketTotals(b *MealBucket) {
	var sum NutritionTotals
	for _, log := range b.Logs {
		sum = sum.Add(log.Totals())
	}
	b.Totals = sum
}

// RecalcDayTotals recomputes every bucket's totals and the day totals.
func RecalcDayTotals(d *Day) {
	var sum NutritionTotals
	for _, meal := range MealNames {
		b := d.Bucket(meal)
		RecalcBucketTotals(b)
		sum = sum.Add(b.Totals)
	}
	d.Totals = sum
}
