package service

import (
	"errors"
	"testing"

	"github.com/collabroomhq/collabroom-backend/internal/models"
)

func newRoomServiceFixture(t *testing.T) (*RoomService, *MockRoomRepository, *mockUserRepository) {
	t.Helper()
	roomRepo := NewMockRoomRepository()
	userRepo := newMockUserRepository()
	userRepo.Create(&models.User{Username: "admin", Email: "admin@example.com"})
	userRepo.Create(&models.User{Username: "bob", Email: "bob@example.com"})
	return NewRoomService(roomRepo, userRepo), roomRepo, userRepo
}

func TestCreateRoomMakesAdminFirstMember(t *testing.T) {
	svc, roomRepo, _ := newRoomServiceFixture(t)

	room, err := svc.Create(1, "Acme Inc")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if room.AdminID != 1 {
		t.Errorf("expected admin id 1, got %d", room.AdminID)
	}

	isMember, err := roomRepo.IsMember(room.ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !isMember {
		t.Error("creator should be a member of the new room")
	}
}

func TestAddMemberAdminOnly(t *testing.T) {
	svc, _, _ := newRoomServiceFixture(t)

	room, err := svc.Create(1, "Acme Inc")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.AddMember(2, room.ID, 2); !errors.Is(err, ErrNotRoomAdmin) {
		t.Errorf("expected ErrNotRoomAdmin, got %v", err)
	}

	if err := svc.AddMember(1, room.ID, 2); err != nil {
		t.Fatalf("admin add failed: %v", err)
	}
	if err := svc.AddMember(1, room.ID, 2); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}
	if err := svc.AddMember(1, room.ID, 999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.AddMember(1, 999, 2); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestGetMembersRequiresMembership(t *testing.T) {
	svc, _, _ := newRoomServiceFixture(t)

	room, err := svc.Create(1, "Acme Inc")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetMembers(2, room.ID); !errors.Is(err, ErrNotRoomMember) {
		t.Errorf("expected ErrNotRoomMember, got %v", err)
	}

	members, err := svc.GetMembers(1, room.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("expected 1 member, got %d", len(members))
	}
}

func TestGetUserRoomsOnlyReturnsJoined(t *testing.T) {
	svc, _, _ := newRoomServiceFixture(t)

	first, err := svc.Create(1, "Acme Inc")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(2, "Beta LLC"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	rooms, err := svc.GetUserRooms(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != first.ID {
		t.Errorf("expected only room %d for user 1, got %+v", first.ID, rooms)
	}
}
