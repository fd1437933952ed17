package models

type ParticipantRole uint8

const (
	RoleCook  ParticipantRole = 0
	RoleGuest ParticipantRole = 1
)

// Participant tags a user in a cooking session
type Participant struct {
	CreatedAt int64
	PostID    uint64 `gorm:"primaryKey"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint64 `gorm:"primaryKey"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Role      ParticipantRole
}
