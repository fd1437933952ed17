package handlers

import (
	"net/http"

	"cooklog/db"
	"cooklog/models"
	"cooklog/push"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ParticipantRequest struct {
	PostID uint64 `json:"post" binding:"required"`
	UserID uint64 `json:"user" binding:"required"`
	Role   uint8  `json:"role"`
}

type ParticipantInfo struct {
	UserID uint64 `json:"user"`
	Name   string `json:"name"`
	Role   uint8  `json:"role"`
}

func ParticipantAdd(c *gin.Context, user *models.User) {
	r := ParticipantRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if loadOwnPost(c, user, r.PostID) == nil {
		return
	}
	participant := models.Participant{
		PostID: r.PostID,
		UserID: r.UserID,
		Role:   models.ParticipantRole(r.Role),
	}
	if db.Instance.Create(&participant).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if r.UserID != user.ID {
		go push.PostTagged(r.UserID, r.PostID, user)
	}
	c.JSON(http.StatusOK, OKResponse)
}

func ParticipantRemove(c *gin.Context, user *models.User) {
	r := ParticipantRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	// The post owner or the tagged user themselves can remove the tag
	post := models.Post{}
	if db.Instance.First(&post, r.PostID).Error != nil {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	if post.UserID != user.ID && r.UserID != user.ID {
		c.JSON(http.StatusUnauthorized, Nope2Response)
		return
	}
	if db.Instance.Delete(&models.Participant{}, "post_id = ? AND user_id = ?", r.PostID, r.UserID).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func ParticipantList(c *gin.Context, user *models.User) {
	postID := c.Query("post")
	rows, err := db.Instance.Table("participants").
		Select("participants.user_id, users.name, participants.role").
		Joins("join users on users.id = participants.user_id").
		Where("participants.post_id = ?", postID).Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []ParticipantInfo{}
	for rows.Next() {
		info := ParticipantInfo{}
		if err = rows.Scan(&info.UserID, &info.Name, &info.Role); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}
