package models

import (
	"time"

	"gorm.io/gorm"
)

type ChannelVisibility string

const (
	PublicChannel  ChannelVisibility = "public"
	PrivateChannel ChannelVisibility = "private"
)

type Channel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomID     uint              `gorm:"not null;uniqueIndex:idx_room_channel_name;index" json:"room_id"`
	Name       string            `gorm:"size:50;not null;uniqueIndex:idx_room_channel_name" json:"name"`
	Visibility ChannelVisibility `gorm:"type:varchar(20);default:'public'" json:"visibility"`
	CreatorID  uint              `gorm:"not null" json:"creator_id"`

	Room    CollabRoom      `gorm:"foreignKey:RoomID" json:"-"`
	Creator User            `gorm:"foreignKey:CreatorID" json:"-"`
	Members []ChannelMember `gorm:"foreignKey:ChannelID" json:"members"`
}

type ChannelMember struct {
	ChannelID uint      `gorm:"primaryKey" json:"channel_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user"`
	Channel Channel `gorm:"foreignKey:ChannelID" json:"-"`
}

type ChannelResponse struct {
	ID          uint              `json:"id"`
	RoomID      uint              `json:"room_id"`
	Name        string            `json:"name"`
	Visibility  ChannelVisibility `json:"visibility"`
	CreatorID   uint              `json:"creator_id"`
	MemberCount int               `json:"member_count"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (ch *Channel) ToResponse() ChannelResponse {
	return ChannelResponse{
		ID:          ch.ID,
		RoomID:      ch.RoomID,
		Name:        ch.Name,
		Visibility:  ch.Visibility,
		CreatorID:   ch.CreatorID,
		MemberCount: len(ch.Members),
		CreatedAt:   ch.CreatedAt,
	}
}
