package repository

import (
	"github.com/collabroomhq/collabroom-backend/internal/models"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	UpdateOnlineStatus(userID uint, isOnline bool) error
}

// RoomRepositoryInterface defines the contract for collab room repository operations
type RoomRepositoryInterface interface {
	Create(room *models.CollabRoom) error
	FindByID(id uint) (*models.CollabRoom, error)
	AddMember(roomID, userID uint) error
	RemoveMember(roomID, userID uint) error
	IsMember(roomID, userID uint) (bool, error)
	GetMembers(roomID uint) ([]models.User, error)
	GetUserRooms(userID uint) ([]models.CollabRoom, error)
}

// ChannelRepositoryInterface defines the contract for channel repository operations
type ChannelRepositoryInterface interface {
	Create(channel *models.Channel) error
	FindByID(id uint) (*models.Channel, error)
	FindByName(roomID uint, name string) (*models.Channel, error)
	ListByRoom(roomID uint) ([]models.Channel, error)
	AddMember(channelID, userID uint) error
	RemoveMember(channelID, userID uint) error
	IsMember(channelID, userID uint) (bool, error)
}

// MessageRepositoryInterface defines the contract for channel message repository operations
type MessageRepositoryInterface interface {
	Create(message *models.ChannelMessage) error
	FindByID(id uint) (*models.ChannelMessage, error)
	FindByClientID(clientID string, senderID uint) (*models.ChannelMessage, error)
	FindChannelMessages(channelID uint, cursor uint, limit int) ([]models.ChannelMessage, error)
}

// RefreshTokenRepositoryInterface defines the contract for refresh token repository operations
type RefreshTokenRepositoryInterface interface {
	Create(token *models.RefreshToken) error
	FindValidByHash(tokenHash string) (*models.RefreshToken, error)
	RevokeByHash(tokenHash string) error
}
