package handlers

import (
	"net/http"
	"time"

	"cooklog/db"
	"cooklog/models"
	"cooklog/push"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type CommentCreateRequest struct {
	PostID          uint64 `json:"post" binding:"required"`
	ParentCommentID uint64 `json:"parent"`
	Content         string `json:"content" binding:"required"`
}

type CommentDeleteRequest struct {
	ID uint64 `json:"id" binding:"required"`
}

type CommentInfo struct {
	ID       uint64 `json:"id"`
	UserID   uint64 `json:"user"`
	UserName string `json:"user_name"`
	Parent   uint64 `json:"parent"`
	Created  int    `json:"created"`
	Content  string `json:"content"`
}

func CommentCreate(c *gin.Context, user *models.User) {
	r := CommentCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	post := models.Post{}
	if db.Instance.First(&post, r.PostID).Error != nil || post.Deleted {
		c.JSON(http.StatusNotFound, NopeResponse)
		return
	}
	comment := models.Comment{
		CreatedAt:       int(time.Now().Unix()),
		UserID:          user.ID,
		PostID:          r.PostID,
		ParentCommentID: r.ParentCommentID,
		Content:         r.Content,
	}
	if db.Instance.Create(&comment).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	go push.PostNewComment(r.PostID, user)
	c.JSON(http.StatusOK, gin.H{"error": "", "id": comment.ID})
}

func CommentDelete(c *gin.Context, user *models.User) {
	r := CommentDeleteRequest{}
	if err := c.ShouldBindWith(&r, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	comment := models.Comment{}
	if db.Instance.First(&comment, r.ID).Error != nil || comment.UserID != user.ID {
		c.JSON(http.StatusUnauthorized, NopeResponse)
		return
	}
	if db.Instance.Delete(&comment).Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func CommentList(c *gin.Context, user *models.User) {
	postID := c.Query("post")
	rows, err := db.Instance.Table("comments").
		Select("comments.id, comments.user_id, users.name, comments.parent_comment_id, comments.created_at, comments.content").
		Joins("join users on users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []CommentInfo{}
	for rows.Next() {
		info := CommentInfo{}
		if err = rows.Scan(&info.ID, &info.UserID, &info.UserName, &info.Parent, &info.Created, &info.Content); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}
