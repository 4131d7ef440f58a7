package models

import (
	"time"

	"gorm.io/gorm"
)

// CollabRoom is a company workspace. Every channel belongs to exactly one room,
// and room membership is a precondition for channel membership.
type CollabRoom struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyName string `gorm:"size:100;not null" json:"company_name"`
	AdminID     uint   `gorm:"not null;index" json:"admin_id"`

	Admin    User         `gorm:"foreignKey:AdminID" json:"admin"`
	Members  []RoomMember `gorm:"foreignKey:RoomID" json:"members"`
	Channels []Channel    `gorm:"foreignKey:RoomID" json:"-"`
}

type RoomMember struct {
	RoomID   uint      `gorm:"primaryKey" json:"room_id"`
	UserID   uint      `gorm:"primaryKey" json:"user_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User User       `gorm:"foreignKey:UserID" json:"user"`
	Room CollabRoom `gorm:"foreignKey:RoomID" json:"-"`
}

type CollabRoomResponse struct {
	ID          uint         `json:"id"`
	CompanyName string       `json:"company_name"`
	AdminID     uint         `json:"admin_id"`
	Admin       UserResponse `json:"admin"`
	MemberCount int          `json:"member_count"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (r *CollabRoom) ToResponse() CollabRoomResponse {
	return CollabRoomResponse{
		ID:          r.ID,
		CompanyName: r.CompanyName,
		AdminID:     r.AdminID,
		Admin:       r.Admin.ToResponse(),
		MemberCount: len(r.Members),
		CreatedAt:   r.CreatedAt,
	}
}
