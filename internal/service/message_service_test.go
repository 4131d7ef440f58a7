package service

import (
	"errors"
	"testing"

	"github.com/collabroomhq/collabroom-backend/internal/models"
	"github.com/collabroomhq/collabroom-backend/internal/testutil"
)

func newMessageServiceFixture(t *testing.T) (*MessageService, *MockMessageRepository, *MockChannelRepository) {
	t.Helper()
	messageRepo := NewMockMessageRepository()
	channelRepo := NewMockChannelRepository()
	channelRepo.Create(&models.Channel{Name: "general", RoomID: 1})
	channelRepo.AddMember(1, 7)
	return NewMessageService(messageRepo, channelRepo), messageRepo, channelRepo
}

func TestSendCreatesMessage(t *testing.T) {
	svc, _, _ := newMessageServiceFixture(t)

	result, err := svc.Send(7, SendMessageInput{
		ClientID:  "5a2f0a51-2a94-4f0e-9a64-1c6f2f2f9b10",
		ChannelID: 1,
		Content:   "hello team",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !result.Created {
		t.Error("expected Created to be true for a first send")
	}
	if result.Message.ID == 0 {
		t.Error("expected a persisted message id")
	}
	if result.Message.SenderID != 7 || result.Message.ChannelID != 1 {
		t.Errorf("message has wrong routing fields: sender %d channel %d", result.Message.SenderID, result.Message.ChannelID)
	}
}

func TestSendResendReturnsExistingMessage(t *testing.T) {
	svc, _, _ := newMessageServiceFixture(t)

	input := SendMessageInput{
		ClientID:  "5a2f0a51-2a94-4f0e-9a64-1c6f2f2f9b10",
		ChannelID: 1,
		Content:   "hello team",
	}

	first, err := svc.Send(7, input)
	if err != nil {
		t.Fatalf("first send failed: %v", err)
	}

	second, err := svc.Send(7, input)
	if err != nil {
		t.Fatalf("resend failed: %v", err)
	}
	if second.Created {
		t.Error("expected Created to be false for a resend")
	}
	if second.Message.ID != first.Message.ID {
		t.Errorf("resend returned a different message: %d vs %d", second.Message.ID, first.Message.ID)
	}
}

func TestSendSameClientIDDifferentSenderCreatesBoth(t *testing.T) {
	svc, _, channelRepo := newMessageServiceFixture(t)
	channelRepo.AddMember(1, 8)

	input := SendMessageInput{
		ClientID:  "5a2f0a51-2a94-4f0e-9a64-1c6f2f2f9b10",
		ChannelID: 1,
		Content:   "hello",
	}

	first, err := svc.Send(7, input)
	if err != nil {
		t.Fatalf("send for user 7 failed: %v", err)
	}
	second, err := svc.Send(8, input)
	if err != nil {
		t.Fatalf("send for user 8 failed: %v", err)
	}
	if !second.Created {
		t.Error("client ids are scoped per sender, expected a new message")
	}
	if second.Message.ID == first.Message.ID {
		t.Error("expected distinct messages for distinct senders")
	}
}

func TestSendRejectsNonMember(t *testing.T) {
	svc, _, _ := newMessageServiceFixture(t)

	_, err := svc.Send(99, SendMessageInput{
		ClientID:  "5a2f0a51-2a94-4f0e-9a64-1c6f2f2f9b10",
		ChannelID: 1,
		Content:   "should not land",
	})
	if !errors.Is(err, ErrNotChannelMember) {
		t.Errorf("expected ErrNotChannelMember, got %v", err)
	}
}

func TestSendRejectsUnknownChannel(t *testing.T) {
	svc, _, _ := newMessageServiceFixture(t)

	_, err := svc.Send(7, SendMessageInput{
		ClientID:  "5a2f0a51-2a94-4f0e-9a64-1c6f2f2f9b10",
		ChannelID: 999,
		Content:   "hi",
	})
	if !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestGetChannelMessagesRequiresMembership(t *testing.T) {
	svc, _, _ := newMessageServiceFixture(t)

	if _, err := svc.GetChannelMessages(99, 1, 0, 50); !errors.Is(err, ErrNotChannelMember) {
		t.Errorf("expected ErrNotChannelMember, got %v", err)
	}
}

func TestGetChannelMessagesPaginatesNewestFirst(t *testing.T) {
	svc, messageRepo, _ := newMessageServiceFixture(t)
	helper := testutil.NewTestHelper(t)

	for i := uint(1); i <= 5; i++ {
		msg := helper.CreateTestMessage(i, 7, 1, "msg")
		msg.ID = 0
		messageRepo.Create(msg)
	}

	page, err := svc.GetChannelMessages(7, 1, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(page))
	}
	if page[0].ID <= page[1].ID {
		t.Error("expected newest-first ordering")
	}

	next, err := svc.GetChannelMessages(7, 1, page[1].ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next) != 2 {
		t.Fatalf("expected 2 messages on second page, got %d", len(next))
	}
	if next[0].ID >= page[1].ID {
		t.Error("cursor page must start strictly below the cursor")
	}
}
