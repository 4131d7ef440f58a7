package service

import (
	"github.com/collabroomhq/collabroom-backend/internal/repository"
)

// MembershipService answers durable membership questions for the real-time
// layer. It reads straight through to the database on every call: join-time
// authorization must reflect the membership relation at call time, so these
// lookups are never cached.
type MembershipService struct {
	roomRepo    repository.RoomRepositoryInterface
	channelRepo repository.ChannelRepositoryInterface
}

func NewMembershipService(roomRepo repository.RoomRepositoryInterface, channelRepo repository.ChannelRepositoryInterface) *MembershipService {
	return &MembershipService{
		roomRepo:    roomRepo,
		channelRepo: channelRepo,
	}
}

func (s *MembershipService) IsRoomMember(userID, roomID uint) (bool, error) {
	return s.roomRepo.IsMember(roomID, userID)
}

func (s *MembershipService) IsChannelMember(userID, channelID uint) (bool, error) {
	return s.channelRepo.IsMember(channelID, userID)
}
