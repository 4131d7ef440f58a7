package service

import (
	"errors"

	"github.com/collabroomhq/collabroom-backend/internal/models"
)

// MockMessageRepository is a mock implementation for tests
// It implements repository.MessageRepositoryInterface.
type MockMessageRepository struct {
	messages map[uint]*models.ChannelMessage
	nextID   uint
	failWith error
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{
		messages: make(map[uint]*models.ChannelMessage),
		nextID:   1,
	}
}

func (m *MockMessageRepository) Create(message *models.ChannelMessage) error {
	if m.failWith != nil {
		return m.failWith
	}
	if message.ID == 0 {
		message.ID = m.nextID
		m.nextID++
	}
	stored := *message
	m.messages[message.ID] = &stored
	return nil
}

func (m *MockMessageRepository) FindByID(id uint) (*models.ChannelMessage, error) {
	if msg, ok := m.messages[id]; ok {
		return msg, nil
	}
	return nil, errors.New("record not found")
}

func (m *MockMessageRepository) FindByClientID(clientID string, senderID uint) (*models.ChannelMessage, error) {
	for _, msg := range m.messages {
		if msg.ClientID == clientID && msg.SenderID == senderID {
			return msg, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *MockMessageRepository) FindChannelMessages(channelID uint, cursor uint, limit int) ([]models.ChannelMessage, error) {
	var out []models.ChannelMessage
	for id := m.nextID; id > 0; id-- {
		msg, ok := m.messages[id]
		if !ok || msg.ChannelID != channelID {
			continue
		}
		if cursor > 0 && msg.ID >= cursor {
			continue
		}
		out = append(out, *msg)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
