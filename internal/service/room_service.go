package service

import (
	"errors"

	"github.com/collabroomhq/collabroom-backend/internal/models"
	"github.com/collabroomhq/collabroom-backend/internal/repository"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrNotRoomAdmin  = errors.New("user is not the admin of the room")
	ErrNotRoomMember = errors.New("user is not a member of the room")
	ErrAlreadyMember = errors.New("user is already a member")
	ErrUserNotFound  = errors.New("user not found")
)

type RoomService struct {
	roomRepo repository.RoomRepositoryInterface
	userRepo repository.UserRepositoryInterface
}

func NewRoomService(roomRepo repository.RoomRepositoryInterface, userRepo repository.UserRepositoryInterface) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
		userRepo: userRepo,
	}
}

// Create makes a new collab room with the creator as its admin and first member.
func (s *RoomService) Create(adminID uint, companyName string) (*models.CollabRoom, error) {
	if _, err := s.userRepo.FindByID(adminID); err != nil {
		return nil, ErrUserNotFound
	}

	room := &models.CollabRoom{
		CompanyName: companyName,
		AdminID:     adminID,
	}
	if err := s.roomRepo.Create(room); err != nil {
		return nil, err
	}

	if err := s.roomRepo.AddMember(room.ID, adminID); err != nil {
		return nil, err
	}

	return s.roomRepo.FindByID(room.ID)
}

// AddMember adds a user to the room. Only the room admin may do this.
func (s *RoomService) AddMember(actorID, roomID, userID uint) error {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		return ErrRoomNotFound
	}
	if room.AdminID != actorID {
		return ErrNotRoomAdmin
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return ErrUserNotFound
	}

	isMember, err := s.roomRepo.IsMember(roomID, userID)
	if err != nil {
		return err
	}
	if isMember {
		return ErrAlreadyMember
	}

	return s.roomRepo.AddMember(roomID, userID)
}

// GetMembers lists room members; the caller must belong to the room.
func (s *RoomService) GetMembers(actorID, roomID uint) ([]models.User, error) {
	isMember, err := s.roomRepo.IsMember(roomID, actorID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotRoomMember
	}
	return s.roomRepo.GetMembers(roomID)
}

func (s *RoomService) GetUserRooms(userID uint) ([]models.CollabRoom, error) {
	return s.roomRepo.GetUserRooms(userID)
}
