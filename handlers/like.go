package handlers

import (
	"net/http"
	"time"

	"cooklog/db"
	"cooklog/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type LikeRequest struct {
	PostID uint64 `json:"post" binding:"required"`
}

func LikeCreate(c *gin.Context, user *models.User) {
	r := LikeRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	post := models.Post{}
	if db.Instance.First(&post, r.PostID).Error != nil || post.Deleted {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	like := models.Like{
		CreatedAt: int(time.Now().Unix()),
		UserID:    user.ID,
		PostID:    r.PostID,
	}
	if db.Instance.Create(&like).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func LikeDelete(c *gin.Context, user *models.User) {
	r := LikeRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if db.Instance.Delete(&models.Like{}, "user_id = ? AND post_id = ?", user.ID, r.PostID).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// LikeList returns the number of likes and whether the current user is one of them
func LikeList(c *gin.Context, user *models.User) {
	postID := c.Query("post")
	var count, mine int64
	if db.Instance.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	db.Instance.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, user.ID).Count(&mine)
	c.JSON(http.StatusOK, gin.H{"error": "", "count": count, "liked": mine > 0})
}
