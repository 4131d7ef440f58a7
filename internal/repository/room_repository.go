package repository

import (
	"github.com/collabroomhq/collabroom-backend/internal/models"
	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(room *models.CollabRoom) error {
	return r.db.Create(room).Error
}

func (r *RoomRepository) FindByID(id uint) (*models.CollabRoom, error) {
	var room models.CollabRoom
	if err := r.db.Preload("Members").Preload("Admin").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) AddMember(roomID, userID uint) error {
	member := models.RoomMember{
		RoomID: roomID,
		UserID: userID,
	}
	return r.db.Create(&member).Error
}

func (r *RoomRepository) RemoveMember(roomID, userID uint) error {
	return r.db.Where("room_id = ? AND user_id = ?", roomID, userID).Delete(&models.RoomMember{}).Error
}

func (r *RoomRepository) IsMember(roomID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *RoomRepository) GetMembers(roomID uint) ([]models.User, error) {
	var members []models.User
	err := r.db.Joins("JOIN room_members ON room_members.user_id = users.id").
		Where("room_members.room_id = ?", roomID).
		Find(&members).Error
	return members, err
}

func (r *RoomRepository) GetUserRooms(userID uint) ([]models.CollabRoom, error) {
	var rooms []models.CollabRoom
	err := r.db.Joins("JOIN room_members ON room_members.room_id = collab_rooms.id").
		Where("room_members.user_id = ?", userID).
		Preload("Admin").
		Find(&rooms).Error
	return rooms, err
}
