package models

import (
	"time"

	"cooklog/utils"
)

type PostShare struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UserID    uint64 `gorm:"not null"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PostID    uint64 `gorm:"not null"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Token     string `gorm:"type:varchar(100);index:uniq_token,unique"`
	ExpiresAt int64  `gorm:"not null"` // 0 indicates no expiration
}

func NewPostShare(userID uint64, post uint64, expires int64) PostShare {
	expiresAt := int64(0)
	if expires > 0 {
		expiresAt = time.Now().Unix() + expires
	}
	return PostShare{
		UserID:    userID,
		PostID:    post,
		Token:     utils.Rand16BytesToBase62(),
		ExpiresAt: expiresAt,
	}
}
