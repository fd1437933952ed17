package handlers

import (
	"net/http"
	"sort"

	"cooklog/db"
	"cooklog/models"

	"github.com/gin-gonic/gin"
)

type CalendarEntry struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	MealType uint8  `json:"meal_type"`
	Rating   uint8  `json:"rating"`
}

type CalendarDay struct {
	Date  string          `json:"date"` // "2006-01-02" in the session's local time
	Meals []CalendarEntry `json:"meals"`
}

// groupPostsByDay buckets sessions by their local calendar day, newest day
// first. Within a day meals keep their natural order (breakfast..snack, then
// by time).
func groupPostsByDay(posts []models.Post) []CalendarDay {
	byDate := map[string][]models.Post{}
	for i := range posts {
		date := posts[i].LocalDate()
		byDate[date] = append(byDate[date], posts[i])
	}
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	result := make([]CalendarDay, 0, len(dates))
	for _, date := range dates {
		group := byDate[date]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].MealType != group[j].MealType {
				return group[i].MealType < group[j].MealType
			}
			return group[i].CookedAt < group[j].CookedAt
		})
		day := CalendarDay{Date: date}
		for i := range group {
			day.Meals = append(day.Meals, CalendarEntry{
				ID:       group[i].ID,
				Title:    group[i].Title,
				MealType: uint8(group[i].MealType),
				Rating:   group[i].Rating,
			})
		}
		result = append(result, day)
	}
	return result
}

// CalendarList returns the user's meal history grouped by local calendar day
func CalendarList(c *gin.Context, user *models.User) {
	tx := db.Instance.
		Table("posts").
		Select("max(updated_at)").
		Where("user_id=? AND deleted=0", user.ID)
	if isNotModified(c, tx) {
		return
	}
	posts := []models.Post{}
	query := db.Instance.Where("user_id = ? AND deleted = 0", user.ID)
	if from := c.Query("from"); from != "" {
		query = query.Where("cooked_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("cooked_at <= ?", to)
	}
	if query.Order("cooked_at DESC").Find(&posts).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, groupPostsByDay(posts))
}
