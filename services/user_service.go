package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/nikgav1/calorie-tracking-app/models"
	"github.com/nikgav1/calorie-tracking-app/utils"
)

var activityLevels = []string{"sedentary", "lightly", "moderate", "very", "extra"}

// UserService reads and updates user profiles, and supplies the stored UTC
// offset to the ledger.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ProfileResponse mirrors what clients expect from /data/user.
type ProfileResponse struct {
	Email             string   `json:"email"`
	UserID            uint     `json:"userId"`
	CalorieGoal       int      `json:"calorie_goal"`
	ProteinGoal       float64  `json:"protein_goal"`
	FatGoal           float64  `json:"fat_goal"`
	CarbohydratesGoal float64  `json:"carbohydrates_goal"`
	Weight            *float64 `json:"weight"`
	Height            *float64 `json:"height"`
	ActivityLevel     string   `json:"activityLevel"`
	Age               *int     `json:"age"`
	Sex               string   `json:"sex"`
	UTCOffsetMinutes  *int     `json:"utcOffsetMinutes"`
}

func profileResponse(u *models.User) *ProfileResponse {
	return &ProfileResponse{
		Email:             u.Email,
		UserID:            u.ID,
		CalorieGoal:       u.CalorieGoal,
		ProteinGoal:       u.ProteinGoal,
		FatGoal:           u.FatGoal,
		CarbohydratesGoal: u.CarbohydratesGoal,
		Weight:            u.Weight,
		Height:            u.Height,
		ActivityLevel:     u.ActivityLevel,
		Age:               u.Age,
		Sex:               u.Sex,
		UTCOffsetMinutes:  u.UTCOffsetMinutes,
	}
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*ProfileResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profileResponse(&user), nil
}

// UTCOffsetMinutes implements ProfileSource. A missing user resolves to an
// unknown offset rather than an error, matching UTC-day fallback semantics.
func (s *UserService) UTCOffsetMinutes(ctx context.Context, userID uint) (*int, error) {
	var user models.User
	err := s.db.WithContext(ctx).Select("utc_offset_minutes").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user.UTCOffsetMinutes, nil
}

// ProfileUpdate accepts any subset of profile fields. Values arrive as
// numbers or strings; aliases activityLevel/ccal are honored for older
// clients.
type ProfileUpdate struct {
	Age               interface{} `json:"age"`
	Sex               interface{} `json:"sex"`
	Weight            interface{} `json:"weight"`
	Height            interface{} `json:"height"`
	ActivityLevel     interface{} `json:"activity_level"`
	ActivityLevelAlt  interface{} `json:"activityLevel"`
	CalorieGoal       interface{} `json:"calorie_goal"`
	CalorieGoalAlt    interface{} `json:"ccal"`
	ProteinGoal       interface{} `json:"protein_goal"`
	FatGoal           interface{} `json:"fat_goal"`
	CarbohydratesGoal interface{} `json:"carbohydrates_goal"`
	UTCOffsetMinutes  interface{} `json:"utcOffsetMinutes"`
}

type profilePatch struct {
	age           *int
	sex           *string
	weight        *float64
	height        *float64
	activityLevel *string
	calorieGoal   *int
	proteinGoal   *float64
	fatGoal       *float64
	carbsGoal     *float64
	utcOffset     *int
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// parseProfilePatch validates each present field against the same ranges the
// clients are told about; any problem fails the whole update with no partial
// write.
func parseProfilePatch(in ProfileUpdate) (*profilePatch, []string) {
	var patch profilePatch
	var problems []string

	if in.Age != nil {
		if f, ok := toFloat(in.Age); ok && f >= 10 && f <= 120 {
			a := int(f)
			patch.age = &a
		} else {
			problems = append(problems, "age must be integer between 10 and 120")
		}
	}
	if in.Sex != nil {
		sex, _ := in.Sex.(string)
		if oneOf(sex, []string{"male", "female"}) {
			patch.sex = &sex
		} else {
			problems = append(problems, `sex must be "male" or "female"`)
		}
	}
	if in.Weight != nil {
		if f, ok := toFloat(in.Weight); ok && f >= 20 && f <= 500 {
			patch.weight = &f
		} else {
			problems = append(problems, "weight must be number between 20 and 500 (kg)")
		}
	}
	if in.Height != nil {
		if f, ok := toFloat(in.Height); ok && f >= 50 && f <= 300 {
			patch.height = &f
		} else {
			problems = append(problems, "height must be number between 50 and 300 (cm)")
		}
	}

	activity := in.ActivityLevel
	if activity == nil {
		activity = in.ActivityLevelAlt
	}
	if activity != nil {
		lvl, _ := activity.(string)
		if oneOf(lvl, activityLevels) {
			patch.activityLevel = &lvl
		} else {
			problems = append(problems, fmt.Sprintf("activity_level must be one of: %s", strings.Join(activityLevels, ", ")))
		}
	}

	calories := in.CalorieGoal
	if calories == nil {
		calories = in.CalorieGoalAlt
	}
	if calories != nil {
		if f, ok := toFloat(calories); ok && f > 0 && f <= 20000 {
			c := int(f)
			patch.calorieGoal = &c
		} else {
			problems = append(problems, "calorie_goal must be positive integer and reasonable")
		}
	}
	if in.ProteinGoal != nil {
		if f, ok := toFloat(in.ProteinGoal); ok && f >= 0 && f <= 500 {
			patch.proteinGoal = &f
		} else {
			problems = append(problems, "protein_goal must be number between 0 and 500 (g)")
		}
	}
	if in.FatGoal != nil {
		if f, ok := toFloat(in.FatGoal); ok && f >= 0 && f <= 500 {
			patch.fatGoal = &f
		} else {
			problems = append(problems, "fat_goal must be number between 0 and 500 (g)")
		}
	}
	if in.CarbohydratesGoal != nil {
		if f, ok := toFloat(in.CarbohydratesGoal); ok && f >= 0 && f <= 1000 {
			patch.carbsGoal = &f
		} else {
			problems = append(problems, "carbohydrates_goal must be number between 0 and 1000 (g)")
		}
	}
	if in.UTCOffsetMinutes != nil {
		if f, ok := toFloat(in.UTCOffsetMinutes); ok && f >= utils.MinUTCOffsetMinutes && f <= utils.MaxUTCOffsetMinutes {
			u := int(f)
			patch.utcOffset = &u
		} else {
			problems = append(problems, "utcOffsetMinutes must be integer between -720 and 840")
		}
	}

	return &patch, problems
}

// UpdateProfile applies a validated partial update. When the calorie goal
// and macros are both in play, macro calories (4/4/9 kcal per gram) must fit
// inside the calorie goal.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) (*ProfileResponse, error) {
	patch, problems := parseProfilePatch(in)

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.calorieGoal != nil && (patch.proteinGoal != nil || patch.fatGoal != nil || patch.carbsGoal != nil) {
		protein := user.ProteinGoal
		if patch.proteinGoal != nil {
			protein = *patch.proteinGoal
		}
		fat := user.FatGoal
		if patch.fatGoal != nil {
			fat = *patch.fatGoal
		}
		carbs := user.CarbohydratesGoal
		if patch.carbsGoal != nil {
			carbs = *patch.carbsGoal
		}
		macroCal := protein*4 + carbs*4 + fat*9
		if macroCal > float64(*patch.calorieGoal) {
			problems = append(problems, "Macro calories exceed calorie goal. Lower macros or increase calorie_goal.")
		}
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	if patch.age != nil {
		user.Age = patch.age
	}
	if patch.sex != nil {
		user.Sex = *patch.sex
	}
	if patch.weight != nil {
		user.Weight = patch.weight
	}
	if patch.height != nil {
		user.Height = patch.height
	}
	if patch.activityLevel != nil {
		user.ActivityLevel = *patch.activityLevel
	}
	if patch.calorieGoal != nil {
		user.CalorieGoal = *patch.calorieGoal
	}
	if patch.proteinGoal != nil {
		user.ProteinGoal = *patch.proteinGoal
	}
	if patch.fatGoal != nil {
		user.FatGoal = *patch.fatGoal
	}
	if patch.carbsGoal != nil {
		user.CarbohydratesGoal = *patch.carbsGoal
	}
	if patch.utcOffset != nil {
		user.UTCOffsetMinutes = patch.utcOffset
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return profileResponse(&user), nil
}
