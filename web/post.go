package web

import (
	"net/http"
	"strconv"
	"time"

	"cooklog/db"
	"cooklog/gallery"
	"cooklog/handlers"
	"cooklog/models"

	"github.com/gin-gonic/gin"
)

func getPostShare(c *gin.Context) (share models.PostShare, ok bool) {
	token := c.Param("token")
	err := db.Instance.
		Where("token = ? and (expires_at = 0 or expires_at > ?)", token, time.Now().Unix()).
		Preload("User").
		Limit(1).
		Find(&share).Error
	if err != nil || share.ID == 0 {
		c.JSON(http.StatusNotFound, handlers.NopeResponse)
		return share, false
	}
	return share, true
}

// PostView renders the public page for a shared cooking session
func PostView(c *gin.Context) {
	share, ok := getPostShare(c)
	if !ok {
		return
	}
	post := models.Post{}
	if db.Instance.First(&post, share.PostID).Error != nil || post.Deleted {
		c.JSON(http.StatusNotFound, handlers.NopeResponse)
		return
	}
	photos := []models.Photo{}
	db.Instance.Where("post_id = ? AND deleted = 0 AND size > 0", post.ID).
		Order("highlight DESC, ord ASC, id ASC").Find(&photos)

	slides := make([]gallery.Slide, 0, len(photos))
	view := gallery.DetailView
	for _, photo := range photos {
		slides = append(slides, gallery.Slide{
			URL:     "/w/post/" + share.Token + "/photo?id=" + strconv.FormatUint(photo.ID, 10),
			Caption: photo.Caption,
			Height:  view.HeightFor(gallery.Dimensions{Width: int(photo.Width), Height: int(photo.Height)}),
		})
	}
	json := gin.H{
		"ownerName": "@" + share.User.Name,
		"title":     post.Title,
		"notes":     post.Notes,
		"rating":    post.Rating,
		"date":      post.LocalDate(),
		"slides":    slides,
	}
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, json)
		return
	}
	c.HTML(http.StatusOK, "post_view.tmpl", json)
}

// PostPhotoView serves one photo of a shared post after validating the token
func PostPhotoView(c *gin.Context) {
	share, ok := getPostShare(c)
	if !ok {
		return
	}
	r := handlers.PhotoFetchRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, handlers.Response{Error: err.Error()})
		return
	}
	photo := models.Photo{}
	if db.Instance.First(&photo, r.ID).Error != nil || photo.PostID != share.PostID {
		c.JSON(http.StatusNotFound, handlers.NopeResponse)
		return
	}
	handlers.RealPhotoFetch(c)
}
