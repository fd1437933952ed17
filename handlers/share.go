package handlers

import (
	"net/http"

	"cooklog/db"
	"cooklog/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type PostShareRequest struct {
	PostID  uint64 `json:"post" binding:"required"`
	Expires int64  `json:"expires"` // seconds from now, 0 means never
}

// PostShareCreate returns a tokenized public link to one post
func PostShareCreate(c *gin.Context, user *models.User) {
	r := PostShareRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if loadOwnPost(c, user, r.PostID) == nil {
		return
	}
	// Reuse an existing non-expiring share for the same post
	existing := models.PostShare{}
	db.Instance.Limit(1).Find(&existing, "user_id = ? AND post_id = ? AND expires_at = 0", user.ID, r.PostID)
	if existing.ID > 0 && r.Expires == 0 {
		c.JSON(http.StatusOK, gin.H{"error": "", "path": "/w/post/" + existing.Token + "/"})
		return
	}
	share := models.NewPostShare(user.ID, r.PostID, r.Expires)
	if db.Instance.Create(&share).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "path": "/w/post/" + share.Token + "/"})
}
