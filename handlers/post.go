package handlers

import (
	"net/http"
	"time"

	"cooklog/db"
	"cooklog/models"
	"cooklog/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type PostSaveRequest struct {
	ID       uint64 `json:"id"` // 0 for a new post
	Title    string `json:"title" binding:"required"`
	Notes    string `json:"notes"`
	Rating   uint8  `json:"rating"`
	MealType uint8  `json:"meal_type"`
	CookedAt int64  `json:"cooked_at"`
	// Local UTC offset as reported by the client, e.g. "+09:00"
	TimeOffset string   `json:"time_offset"`
	Lat        *float64 `json:"lat"`
	Long       *float64 `json:"long"`
}

type PostInfo struct {
	ID       uint64  `json:"id"`
	UserID   uint64  `json:"user"`
	UserName string  `json:"user_name"`
	Title    string  `json:"title"`
	Notes    string  `json:"notes"`
	Rating   uint8   `json:"rating"`
	MealType uint8   `json:"meal_type"`
	CookedAt int64   `json:"cooked_at"`
	Place    *string `json:"place"`
	Likes    int64   `json:"likes"`
	Comments int64   `json:"comments"`
}

type PostDeleteRequest struct {
	ID uint64 `json:"id" binding:"required"`
}

const postsSelectClause = "posts.id, posts.user_id, users.name, posts.title, posts.notes, posts.rating, posts.meal_type, posts.cooked_at+ifnull(posts.time_offset,0), locations.display, " +
	"(select count(*) from likes where likes.post_id = posts.id), " +
	"(select count(*) from comments where comments.post_id = posts.id)"

const leftJoinForLocations = "left join locations ON locations.gps_lat = round(posts.gps_lat*10000-0.5)/10000.0 AND locations.gps_long = round(posts.gps_long*10000-0.5)/10000.0"

func PostSave(c *gin.Context, user *models.User) {
	r := PostSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if r.Rating > 5 {
		c.JSON(http.StatusBadRequest, Response{"rating must be 0..5"})
		return
	}
	if r.MealType > uint8(models.MealTypeSnack) {
		c.JSON(http.StatusBadRequest, Response{"unknown meal type"})
		return
	}
	post := models.Post{}
	if r.ID > 0 {
		if db.Instance.First(&post, r.ID).Error != nil || post.UserID != user.ID {
			c.JSON(http.StatusUnauthorized, NopeResponse)
			return
		}
	} else {
		post.UserID = user.ID
		post.CookedAt = time.Now().Unix()
	}
	post.Title = r.Title
	post.Notes = r.Notes
	post.Rating = r.Rating
	post.MealType = models.MealType(r.MealType)
	if r.CookedAt > 0 {
		post.CookedAt = r.CookedAt
	}
	if r.TimeOffset != "" {
		post.TimeOffset = utils.ParseTimeOffset(r.TimeOffset)
	}
	if r.Lat != nil && r.Long != nil {
		post.GpsLat = r.Lat
		post.GpsLong = r.Long
	}
	if db.Instance.Save(&post).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "id": post.ID})
}

// PostList is the feed: the user's own sessions plus the ones they were
// tagged in, most recently cooked first
func PostList(c *gin.Context, user *models.User) {
	feedCondition := "(posts.user_id = ? OR posts.id IN (select post_id from participants where user_id = ?))"
	tx := db.Instance.
		Table("posts").
		Select("max(updated_at)").
		Where("deleted=0 AND "+feedCondition, user.ID, user.ID)
	if c.Query("reload") != "1" && isNotModified(c, tx) {
		return
	}
	rows, err := db.Instance.
		Table("posts").
		Select(postsSelectClause).
		Joins("join users on users.id = posts.user_id").
		Joins(leftJoinForLocations).
		Where("posts.deleted=0 AND "+feedCondition, user.ID, user.ID).
		Order("posts.cooked_at DESC").Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []PostInfo{}
	for rows.Next() {
		postInfo := PostInfo{}
		if err = rows.Scan(&postInfo.ID, &postInfo.UserID, &postInfo.UserName, &postInfo.Title, &postInfo.Notes,
			&postInfo.Rating, &postInfo.MealType, &postInfo.CookedAt, &postInfo.Place,
			&postInfo.Likes, &postInfo.Comments); err != nil {

			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, postInfo)
	}
	c.JSON(http.StatusOK, result)
}

func PostDelete(c *gin.Context, user *models.User) {
	r := PostDeleteRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	post := models.Post{}
	if db.Instance.First(&post, r.ID).Error != nil || post.UserID != user.ID {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	post.Deleted = true
	if db.Instance.Save(&post).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	db.Instance.Model(&models.Photo{}).Where("post_id = ?", post.ID).Update("deleted", true)
	c.JSON(http.StatusOK, OKResponse)
}
