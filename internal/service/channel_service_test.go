package service

import (
	"errors"
	"testing"

	"github.com/collabroomhq/collabroom-backend/internal/models"
)

func newChannelServiceFixture(t *testing.T) (*ChannelService, *MockChannelRepository, *MockRoomRepository) {
	t.Helper()
	channelRepo := NewMockChannelRepository()
	roomRepo := NewMockRoomRepository()
	roomRepo.Create(&models.CollabRoom{CompanyName: "Acme Inc", AdminID: 1})
	roomRepo.AddMember(1, 1)
	roomRepo.AddMember(1, 2)
	return NewChannelService(channelRepo, roomRepo), channelRepo, roomRepo
}

func TestCreateChannelAdminOnlyAndUniqueName(t *testing.T) {
	svc, _, _ := newChannelServiceFixture(t)

	channel, err := svc.Create(1, 1, "general", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if channel.Visibility != models.PublicChannel {
		t.Errorf("expected public default, got %q", channel.Visibility)
	}

	if _, err := svc.Create(2, 1, "random", ""); !errors.Is(err, ErrNotRoomAdmin) {
		t.Errorf("expected ErrNotRoomAdmin, got %v", err)
	}
	if _, err := svc.Create(1, 1, "general", ""); !errors.Is(err, ErrChannelExists) {
		t.Errorf("expected ErrChannelExists, got %v", err)
	}
	if _, err := svc.Create(1, 999, "general", ""); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestCreateChannelCreatorAutoJoins(t *testing.T) {
	svc, channelRepo, _ := newChannelServiceFixture(t)

	channel, err := svc.Create(1, 1, "general", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	isMember, err := channelRepo.IsMember(channel.ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isMember {
		t.Error("creator should be a member of the new channel")
	}
}

func TestJoinChannelRequiresRoomMembership(t *testing.T) {
	svc, _, _ := newChannelServiceFixture(t)

	channel, err := svc.Create(1, 1, "general", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Join(99, channel.ID); !errors.Is(err, ErrNotRoomMember) {
		t.Errorf("expected ErrNotRoomMember, got %v", err)
	}
	if err := svc.Join(2, channel.ID); err != nil {
		t.Fatalf("room member should join: %v", err)
	}
	// Joining twice is a no-op.
	if err := svc.Join(2, channel.ID); err != nil {
		t.Errorf("second join should succeed: %v", err)
	}
	if err := svc.Join(2, 999); !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("expected ErrChannelNotFound, got %v", err)
	}
}

func TestLeaveChannelIdempotent(t *testing.T) {
	svc, channelRepo, _ := newChannelServiceFixture(t)

	channel, err := svc.Create(1, 1, "general", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Join(2, channel.ID); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	if err := svc.Leave(2, channel.ID); err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	isMember, _ := channelRepo.IsMember(channel.ID, 2)
	if isMember {
		t.Error("user should no longer be a member")
	}
	if err := svc.Leave(2, channel.ID); err != nil {
		t.Errorf("second leave should succeed: %v", err)
	}
}

func TestListByRoomRequiresMembership(t *testing.T) {
	svc, _, _ := newChannelServiceFixture(t)

	if _, err := svc.Create(1, 1, "general", ""); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.ListByRoom(99, 1); !errors.Is(err, ErrNotRoomMember) {
		t.Errorf("expected ErrNotRoomMember, got %v", err)
	}
	channels, err := svc.ListByRoom(2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(channels) != 1 {
		t.Errorf("expected 1 channel, got %d", len(channels))
	}
}
