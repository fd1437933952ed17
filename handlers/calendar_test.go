package handlers

import (
	"testing"

	"cooklog/models"

	"github.com/stretchr/testify/assert"
)

func TestGroupPostsByDay(t *testing.T) {
	offsetTokyo := 9 * 3600
	offsetUTC := 0
	posts := []models.Post{
		// 2023-10-02 15:00 UTC is already 2023-10-03 in Tokyo
		{ID: 1, Title: "Ramen", MealType: models.MealTypeDinner, CookedAt: 1696258800, TimeOffset: &offsetTokyo},
		{ID: 2, Title: "Toast", MealType: models.MealTypeBreakfast, CookedAt: 1696258800, TimeOffset: &offsetUTC},
		{ID: 3, Title: "Soup", MealType: models.MealTypeLunch, CookedAt: 1696258800 + 3600, TimeOffset: &offsetUTC},
	}
	days := groupPostsByDay(posts)

	assert.Len(t, days, 2)
	// Newest day first
	assert.Equal(t, "2023-10-03", days[0].Date)
	assert.Len(t, days[0].Meals, 1)
	assert.Equal(t, uint64(1), days[0].Meals[0].ID)

	assert.Equal(t, "2023-10-02", days[1].Date)
	assert.Len(t, days[1].Meals, 2)
	// Breakfast sorts before lunch
	assert.Equal(t, uint64(2), days[1].Meals[0].ID)
	assert.Equal(t, uint64(3), days[1].Meals[1].ID)
}

func TestGroupPostsByDayEmpty(t *testing.T) {
	assert.Empty(t, groupPostsByDay(nil))
}

func TestGroupPostsByDaySameMealOrderedByTime(t *testing.T) {
	offset := 0
	posts := []models.Post{
		{ID: 1, Title: "Second snack", MealType: models.MealTypeSnack, CookedAt: 1696260000, TimeOffset: &offset},
		{ID: 2, Title: "First snack", MealType: models.MealTypeSnack, CookedAt: 1696250000, TimeOffset: &offset},
	}
	days := groupPostsByDay(posts)
	assert.Len(t, days, 1)
	assert.Equal(t, uint64(2), days[0].Meals[0].ID)
	assert.Equal(t, uint64(1), days[0].Meals[1].ID)
}
