package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestUserToResponseHidesPasswordHash(t *testing.T) {
	user := User{
		ID:           1,
		Username:     "hana",
		Email:        "hana@example.com",
		PasswordHash: "$2a$10$secret",
		FullName:     "Hana Ito",
		Role:         "user",
		IsOnline:     true,
	}

	resp := user.ToResponse()
	if resp.Username != "hana" || resp.Email != "hana@example.com" || !resp.IsOnline {
		t.Errorf("unexpected response: %+v", resp)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(raw), "secret") {
		t.Error("password hash leaked into the response")
	}
}

func TestCollabRoomToResponseCountsMembers(t *testing.T) {
	room := CollabRoom{
		ID:          3,
		CompanyName: "Acme Inc",
		AdminID:     1,
		Admin:       User{ID: 1, Username: "admin"},
		Members: []RoomMember{
			{RoomID: 3, UserID: 1},
			{RoomID: 3, UserID: 2},
		},
	}

	resp := room.ToResponse()
	if resp.MemberCount != 2 {
		t.Errorf("expected 2 members, got %d", resp.MemberCount)
	}
	if resp.Admin.Username != "admin" {
		t.Errorf("expected nested admin, got %+v", resp.Admin)
	}
}

func TestChannelToResponse(t *testing.T) {
	channel := Channel{
		ID:         42,
		RoomID:     3,
		Name:       "general",
		Visibility: PublicChannel,
		CreatorID:  1,
		Members:    []ChannelMember{{ChannelID: 42, UserID: 1}},
	}

	resp := channel.ToResponse()
	if resp.Name != "general" || resp.Visibility != PublicChannel || resp.MemberCount != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestChannelMessageToResponse(t *testing.T) {
	media := "attachments/report.pdf"
	msg := ChannelMessage{
		ID:        10,
		ClientID:  "5a2f0a51-2a94-4f0e-9a64-1c6f2f2f9b10",
		SenderID:  7,
		Sender:    User{ID: 7, Username: "hana"},
		ChannelID: 42,
		Content:   "see attachment",
		MediaURL:  &media,
	}

	resp := msg.ToResponse()
	if resp.ChannelID != 42 || resp.SenderID != 7 {
		t.Errorf("unexpected routing fields: %+v", resp)
	}
	if resp.MediaURL == nil || *resp.MediaURL != media {
		t.Error("media url not carried through")
	}
	if resp.Sender.Username != "hana" {
		t.Errorf("expected nested sender, got %+v", resp.Sender)
	}
}

func TestRefreshTokenState(t *testing.T) {
	now := time.Now()
	tok := RefreshToken{ExpiresAt: now.Add(time.Hour)}

	if tok.IsRevoked() {
		t.Error("fresh token should not be revoked")
	}
	if tok.IsExpired(now) {
		t.Error("fresh token should not be expired")
	}
	if !tok.IsExpired(now.Add(2 * time.Hour)) {
		t.Error("token past its expiry should be expired")
	}

	tok.RevokedAt = &now
	if !tok.IsRevoked() {
		t.Error("revoked token should report revoked")
	}
}
