package service

import (
	"errors"
	"strings"

	"github.com/collabroomhq/collabroom-backend/internal/models"
)

// MockChannelRepository is a mock implementation for tests
// It implements repository.ChannelRepositoryInterface.
type MockChannelRepository struct {
	channels    map[uint]*models.Channel
	memberships map[uint]map[uint]struct{}
	nextID      uint
	failWith    error
}

func NewMockChannelRepository() *MockChannelRepository {
	return &MockChannelRepository{
		channels:    make(map[uint]*models.Channel),
		memberships: make(map[uint]map[uint]struct{}),
		nextID:      1,
	}
}

func (m *MockChannelRepository) Create(channel *models.Channel) error {
	if m.failWith != nil {
		return m.failWith
	}
	if channel.ID == 0 {
		channel.ID = m.nextID
		m.nextID++
	}
	m.channels[channel.ID] = channel
	return nil
}

func (m *MockChannelRepository) FindByID(id uint) (*models.Channel, error) {
	if c, ok := m.channels[id]; ok {
		return c, nil
	}
	return nil, errors.New("record not found")
}

func (m *MockChannelRepository) FindByName(roomID uint, name string) (*models.Channel, error) {
	for _, c := range m.channels {
		if c.RoomID == roomID && strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockChannelRepository) ListByRoom(roomID uint) ([]models.Channel, error) {
	var out []models.Channel
	for _, c := range m.channels {
		if c.RoomID == roomID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *MockChannelRepository) AddMember(channelID, userID uint) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.memberships[channelID]; !ok {
		m.memberships[channelID] = make(map[uint]struct{})
	}
	m.memberships[channelID][userID] = struct{}{}
	return nil
}

func (m *MockChannelRepository) RemoveMember(channelID, userID uint) error {
	if members, ok := m.memberships[channelID]; ok {
		delete(members, userID)
	}
	return nil
}

func (m *MockChannelRepository) IsMember(channelID, userID uint) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	if members, ok := m.memberships[channelID]; ok {
		_, ok := members[userID]
		return ok, nil
	}
	return false, nil
}
