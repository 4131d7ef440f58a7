package repository

import (
	"github.com/collabroomhq/collabroom-backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.ChannelMessage) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) FindByID(id uint) (*models.ChannelMessage, error) {
	var message models.ChannelMessage
	if err := r.db.Preload("Sender").Preload("Channel").First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) FindByClientID(clientID string, senderID uint) (*models.ChannelMessage, error) {
	var message models.ChannelMessage
	err := r.db.Where("client_id = ? AND sender_id = ?", clientID, senderID).
		Preload("Sender").
		Preload("Channel").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// FindChannelMessages returns messages newest-first. A non-zero cursor fetches
// messages older than the given message ID.
func (r *MessageRepository) FindChannelMessages(channelID uint, cursor uint, limit int) ([]models.ChannelMessage, error) {
	q := r.db.Where("channel_id = ?", channelID)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var messages []models.ChannelMessage
	err := q.Order("id DESC").
		Limit(limit).
		Preload("Sender").
		Find(&messages).Error
	return messages, err
}
