package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProfilePatchAcceptsValidFields(t *testing.T) {
	patch, problems := parseProfilePatch(ProfileUpdate{
		Age:               30.0,
		Sex:               "female",
		Weight:            "62.5",
		Height:            170.0,
		ActivityLevelAlt:  "moderate",
		CalorieGoalAlt:    "1800",
		ProteinGoal:       120.0,
		FatGoal:           60.0,
		CarbohydratesGoal: 180.0,
		UTCOffsetMinutes:  180.0,
	})

	require.Empty(t, problems)
	require.Equal(t, 30, *patch.age)
	require.Equal(t, "female", *patch.sex)
	require.Equal(t, 62.5, *patch.weight)
	require.Equal(t, 170.0, *patch.height)
	require.Equal(t, "moderate", *patch.activityLevel)
	require.Equal(t, 1800, *patch.calorieGoal, "ccal alias honored")
	require.Equal(t, 120.0, *patch.proteinGoal)
	require.Equal(t, 180, *patch.utcOffset)
}

func TestParseProfilePatchAbsentFieldsStayNil(t *testing.T) {
	patch, problems := parseProfilePatch(ProfileUpdate{Sex: "male"})
	require.Empty(t, problems)
	require.Nil(t, patch.age)
	require.Nil(t, patch.weight)
	require.Nil(t, patch.calorieGoal)
	require.Nil(t, patch.utcOffset)
	require.Equal(t, "male", *patch.sex)
}

func TestParseProfilePatchRanges(t *testing.T) {
	tests := []struct {
		name string
		in   ProfileUpdate
	}{
		{"age too low", ProfileUpdate{Age: 5.0}},
		{"age garbage", ProfileUpdate{Age: "old"}},
		{"sex unknown", ProfileUpdate{Sex: "other"}},
		{"weight too high", ProfileUpdate{Weight: 600.0}},
		{"height too low", ProfileUpdate{Height: 10.0}},
		{"activity unknown", ProfileUpdate{ActivityLevel: "athlete"}},
		{"calorie goal zero", ProfileUpdate{CalorieGoal: 0.0}},
		{"protein negative", ProfileUpdate{ProteinGoal: -1.0}},
		{"carbs too high", ProfileUpdate{CarbohydratesGoal: 1500.0}},
		{"offset below range", ProfileUpdate{UTCOffsetMinutes: -721.0}},
		{"offset above range", ProfileUpdate{UTCOffsetMinutes: 841.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, problems := parseProfilePatch(tt.in)
			require.Len(t, problems, 1)
		})
	}
}

func TestParseProfilePatchOffsetBoundaries(t *testing.T) {
	patch, problems := parseProfilePatch(ProfileUpdate{UTCOffsetMinutes: -720.0})
	require.Empty(t, problems)
	require.Equal(t, -720, *patch.utcOffset)

	patch, problems = parseProfilePatch(ProfileUpdate{UTCOffsetMinutes: 840.0})
	require.Empty(t, problems)
	require.Equal(t, 840, *patch.utcOffset)
}

func TestToFloat(t *testing.T) {
	f, ok := toFloat(" 42 ")
	require.True(t, ok)
	require.Equal(t, 42.0, f)

	_, ok = toFloat("forty-two")
	require.False(t, ok)

	_, ok = toFloat(nil)
	require.False(t, ok)

	f, ok = toFloat(7)
	require.True(t, ok)
	require.Equal(t, 7.0, f)
}
