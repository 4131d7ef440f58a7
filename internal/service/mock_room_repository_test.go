package service

import (
	"errors"

	"github.com/collabroomhq/collabroom-backend/internal/models"
)

// MockRoomRepository is a mock implementation for tests
// It implements repository.RoomRepositoryInterface.
type MockRoomRepository struct {
	rooms       map[uint]*models.CollabRoom
	memberships map[uint]map[uint]struct{}
	nextID      uint
	failWith    error
}

func NewMockRoomRepository() *MockRoomRepository {
	return &MockRoomRepository{
		rooms:       make(map[uint]*models.CollabRoom),
		memberships: make(map[uint]map[uint]struct{}),
		nextID:      1,
	}
}

func (m *MockRoomRepository) Create(room *models.CollabRoom) error {
	if m.failWith != nil {
		return m.failWith
	}
	if room.ID == 0 {
		room.ID = m.nextID
		m.nextID++
	}
	m.rooms[room.ID] = room
	return nil
}

func (m *MockRoomRepository) FindByID(id uint) (*models.CollabRoom, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, errors.New("record not found")
}

func (m *MockRoomRepository) AddMember(roomID, userID uint) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.memberships[roomID]; !ok {
		m.memberships[roomID] = make(map[uint]struct{})
	}
	m.memberships[roomID][userID] = struct{}{}
	return nil
}

func (m *MockRoomRepository) RemoveMember(roomID, userID uint) error {
	if members, ok := m.memberships[roomID]; ok {
		delete(members, userID)
	}
	return nil
}

func (m *MockRoomRepository) IsMember(roomID, userID uint) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	if members, ok := m.memberships[roomID]; ok {
		_, ok := members[userID]
		return ok, nil
	}
	return false, nil
}

func (m *MockRoomRepository) GetMembers(roomID uint) ([]models.User, error) {
	var users []models.User
	if members, ok := m.memberships[roomID]; ok {
		for uid := range members {
			users = append(users, models.User{ID: uid})
		}
	}
	return users, nil
}

func (m *MockRoomRepository) GetUserRooms(userID uint) ([]models.CollabRoom, error) {
	var out []models.CollabRoom
	for roomID, members := range m.memberships {
		if _, ok := members[userID]; ok {
			if r, ok := m.rooms[roomID]; ok {
				out = append(out, *r)
			}
		}
	}
	return out, nil
}
