package service

import (
	"errors"

	"github.com/collabroomhq/collabroom-backend/internal/models"
	"github.com/collabroomhq/collabroom-backend/internal/repository"
)

var (
	ErrChannelNotFound  = errors.New("channel not found")
	ErrNotChannelMember = errors.New("user is not a member of the channel")
)

type MessageService struct {
	messageRepo repository.MessageRepositoryInterface
	channelRepo repository.ChannelRepositoryInterface
}

func NewMessageService(messageRepo repository.MessageRepositoryInterface, channelRepo repository.ChannelRepositoryInterface) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		channelRepo: channelRepo,
	}
}

type SendMessageInput struct {
	ClientID  string  `json:"client_id"`
	ChannelID uint    `json:"channel_id"`
	Content   string  `json:"content"`
	MediaURL  *string `json:"media_url"`
}

type SendResult struct {
	Message *models.ChannelMessage
	Created bool
}

// Send persists a channel message after verifying the sender's channel
// membership. Resends with a known client ID return the existing row with
// Created false, so the caller never dispatches the same message twice.
func (s *MessageService) Send(senderID uint, input SendMessageInput) (*SendResult, error) {
	if _, err := s.channelRepo.FindByID(input.ChannelID); err != nil {
		return nil, ErrChannelNotFound
	}

	isMember, err := s.channelRepo.IsMember(input.ChannelID, senderID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotChannelMember
	}

	if existing, err := s.messageRepo.FindByClientID(input.ClientID, senderID); err == nil {
		return &SendResult{Message: existing, Created: false}, nil
	}

	message := &models.ChannelMessage{
		ClientID:  input.ClientID,
		SenderID:  senderID,
		ChannelID: input.ChannelID,
		Content:   input.Content,
		MediaURL:  input.MediaURL,
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	// Reload with sender and channel resolved for the broadcast payload.
	loaded, err := s.messageRepo.FindByID(message.ID)
	if err != nil {
		return nil, err
	}

	return &SendResult{Message: loaded, Created: true}, nil
}

// GetChannelMessages returns channel history for a member, newest-first with
// cursor pagination.
func (s *MessageService) GetChannelMessages(userID, channelID uint, cursor uint, limit int) ([]models.ChannelMessage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	isMember, err := s.channelRepo.IsMember(channelID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrNotChannelMember
	}

	return s.messageRepo.FindChannelMessages(channelID, cursor, limit)
}
