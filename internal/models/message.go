package models

import (
	"time"

	"gorm.io/gorm"
)

type ChannelMessage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Client-supplied UUID for write deduplication
	ClientID string `gorm:"type:varchar(36);uniqueIndex:idx_client_sender;not null" json:"client_id"`

	SenderID  uint    `gorm:"not null;uniqueIndex:idx_client_sender;index" json:"sender_id"`
	Sender    User    `gorm:"foreignKey:SenderID" json:"sender"`
	ChannelID uint    `gorm:"not null;index" json:"channel_id"`
	Channel   Channel `gorm:"foreignKey:ChannelID" json:"-"`

	Content  string  `gorm:"type:text;not null" json:"content"`
	MediaURL *string `json:"media_url"`
}

type ChannelMessageResponse struct {
	ID        uint         `json:"id"`
	ClientID  string       `json:"client_id"`
	SenderID  uint         `json:"sender_id"`
	Sender    UserResponse `json:"sender"`
	ChannelID uint         `json:"channel_id"`
	Content   string       `json:"content"`
	MediaURL  *string      `json:"media_url"`
	CreatedAt time.Time    `json:"created_at"`
}

func (m *ChannelMessage) ToResponse() ChannelMessageResponse {
	return ChannelMessageResponse{
		ID:        m.ID,
		ClientID:  m.ClientID,
		SenderID:  m.SenderID,
		Sender:    m.Sender.ToResponse(),
		ChannelID: m.ChannelID,
		Content:   m.Content,
		MediaURL:  m.MediaURL,
		CreatedAt: m.CreatedAt,
	}
}
