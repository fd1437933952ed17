package push

import (
	"log"
	"strconv"

	"cooklog/config"
	"cooklog/db"
	"cooklog/models"
)

// PostTagged notifies a user they were tagged as a participant in a session
func PostTagged(taggedUser, postId uint64, taggedByUser *models.User) {
	if config.PUSH_SERVER == "" {
		return
	}
	receiver := models.User{ID: taggedUser}
	if err := db.Instance.First(&receiver).Error; err != nil {
		log.Printf("PostTagged DB error: %v", err)
		return
	}
	if receiver.PushToken == "" {
		return
	}
	post := models.Post{ID: postId}
	if db.Instance.First(&post).Error != nil {
		log.Print("Cannot find post?")
		return
	}
	notification := Notification{
		Title: post.Title,
		Body:  taggedByUser.Name + " tagged you in a cooking session",
		Data: map[string]string{
			"type": NotificationTypeTaggedInPost,
			"post": strconv.Itoa(int(postId)),
		},
	}
	notification.SendTo([]string{receiver.PushToken})
}

// PostNewComment notifies the post author and tagged participants of a new comment
func PostNewComment(postId uint64, commentByUser *models.User) {
	if config.PUSH_SERVER == "" {
		return
	}
	post := models.Post{ID: postId}
	if db.Instance.Preload("User").First(&post).Error != nil {
		log.Print("Cannot find post?")
		return
	}
	var participants []models.Participant
	db.Instance.Preload("User").Where("post_id = ?", postId).Find(&participants)

	tokens := []string{}
	if post.UserID != commentByUser.ID && post.User.PushToken != "" {
		tokens = append(tokens, post.User.PushToken)
	}
	for _, p := range participants {
		if p.UserID == commentByUser.ID || p.User.PushToken == "" {
			continue
		}
		tokens = append(tokens, p.User.PushToken)
	}
	if len(tokens) == 0 {
		return
	}
	notification := Notification{
		Title: post.Title,
		Body:  commentByUser.Name + " commented",
		Data: map[string]string{
			"type": NotificationTypeComment,
			"post": strconv.Itoa(int(postId)),
		},
	}
	notification.SendTo(tokens)
}
