package repository

import (
	"github.com/collabroomhq/collabroom-backend/internal/models"
	"gorm.io/gorm"
)

type ChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

func (r *ChannelRepository) Create(channel *models.Channel) error {
	return r.db.Create(channel).Error
}

func (r *ChannelRepository) FindByID(id uint) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.Preload("Members").First(&channel, id).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepository) FindByName(roomID uint, name string) (*models.Channel, error) {
	var channel models.Channel
	err := r.db.Where("room_id = ? AND LOWER(name) = LOWER(?)", roomID, name).First(&channel).Error
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepository) ListByRoom(roomID uint) ([]models.Channel, error) {
	var channels []models.Channel
	err := r.db.Where("room_id = ?", roomID).
		Preload("Members").
		Find(&channels).Error
	return channels, err
}

func (r *ChannelRepository) AddMember(channelID, userID uint) error {
	member := models.ChannelMember{
		ChannelID: channelID,
		UserID:    userID,
	}
	return r.db.Create(&member).Error
}

func (r *ChannelRepository) RemoveMember(channelID, userID uint) error {
	return r.db.Where("channel_id = ? AND user_id = ?", channelID, userID).Delete(&models.ChannelMember{}).Error
}

func (r *ChannelRepository) IsMember(channelID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ChannelMember{}).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Count(&count).Error
	return count > 0, err
}
