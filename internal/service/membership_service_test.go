package service

import (
	"errors"
	"testing"
)

func TestIsRoomMember(t *testing.T) {
	roomRepo := NewMockRoomRepository()
	channelRepo := NewMockChannelRepository()
	svc := NewMembershipService(roomRepo, channelRepo)

	roomRepo.AddMember(10, 1)

	ok, err := svc.IsRoomMember(1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected user 1 to be a member of room 10")
	}

	ok, err = svc.IsRoomMember(2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected user 2 not to be a member of room 10")
	}
}

func TestIsChannelMember(t *testing.T) {
	roomRepo := NewMockRoomRepository()
	channelRepo := NewMockChannelRepository()
	svc := NewMembershipService(roomRepo, channelRepo)

	channelRepo.AddMember(42, 7)

	ok, err := svc.IsChannelMember(7, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected user 7 to be a member of channel 42")
	}

	ok, err = svc.IsChannelMember(8, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected user 8 not to be a member of channel 42")
	}
}

func TestMembershipLookupPropagatesRepoError(t *testing.T) {
	roomRepo := NewMockRoomRepository()
	channelRepo := NewMockChannelRepository()
	svc := NewMembershipService(roomRepo, channelRepo)

	dbErr := errors.New("connection refused")
	roomRepo.failWith = dbErr
	channelRepo.failWith = dbErr

	if _, err := svc.IsRoomMember(1, 10); !errors.Is(err, dbErr) {
		t.Errorf("expected room lookup to surface repo error, got %v", err)
	}
	if _, err := svc.IsChannelMember(1, 42); !errors.Is(err, dbErr) {
		t.Errorf("expected channel lookup to surface repo error, got %v", err)
	}
}
