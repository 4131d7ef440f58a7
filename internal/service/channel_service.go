package service

import (
	"errors"

	"github.com/collabroomhq/collabroom-backend/internal/models"
	"github.com/collabroomhq/collabroom-backend/internal/repository"
)

var ErrChannelExists = errors.New("channel already exists")

type ChannelService struct {
	channelRepo repository.ChannelRepositoryInterface
	roomRepo    repository.RoomRepositoryInterface
}

func NewChannelService(channelRepo repository.ChannelRepositoryInterface, roomRepo repository.RoomRepositoryInterface) *ChannelService {
	return &ChannelService{
		channelRepo: channelRepo,
		roomRepo:    roomRepo,
	}
}

// Create adds a channel to a room. Only the room admin can create channels;
// channel names are unique within a room. The creator joins automatically.
func (s *ChannelService) Create(actorID, roomID uint, name string, visibility models.ChannelVisibility) (*models.Channel, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	if room.AdminID != actorID {
		return nil, ErrNotRoomAdmin
	}

	if _, err := s.channelRepo.FindByName(roomID, name); err == nil {
		return nil, ErrChannelExists
	}

	if visibility == "" {
		visibility = models.PublicChannel
	}

	channel := &models.Channel{
		RoomID:     roomID,
		Name:       name,
		Visibility: visibility,
		CreatorID:  actorID,
	}
	if err := s.channelRepo.Create(channel); err != nil {
		return nil, err
	}

	if err := s.channelRepo.AddMember(channel.ID, actorID); err != nil {
		return nil, err
	}

	return s.channelRepo.FindByID(channel.ID)
}

// Join adds the user to a channel. Requires membership of the channel's room.
// Joining a channel twice is a no-op.
func (s *ChannelService) Join(userID, channelID uint) error {
	channel, err := s.channelRepo.FindByID(channelID)
	if err != nil {
		return ErrChannelNotFound
	}

	isRoomMember, err := s.roomRepo.IsMember(channel.RoomID, userID)
	if err != nil {
		return err
	}
	if !isRoomMember {
		return ErrNotRoomMember
	}

	isMember, err := s.channelRepo.IsMember(channelID, userID)
	if err != nil {
		return err
	}
	if isMember {
		return nil
	}

	return s.channelRepo.AddMember(channelID, userID)
}

// Leave removes the user from a channel. Idempotent.
func (s *ChannelService) Leave(userID, channelID uint) error {
	return s.channelRepo.RemoveMember(channelID, userID)
}

// ListByRoom lists a room's channels for one of its members.
func (s *ChannelService) ListByRoom(actorID, roomID uint) ([]models.Channel, error) {
	isMember, err := s.roomRepo.IsMember(roomID, actorID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotRoomMember
	}
	return s.channelRepo.ListByRoom(roomID)
}
