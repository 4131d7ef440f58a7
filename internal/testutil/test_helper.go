package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/collabroomhq/collabroom-backend/internal/models"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// CreateTestUser creates a test user with default values
func (h *TestHelper) CreateTestUser(id uint, username, email string) *models.User {
	if id == 0 {
		id = 1
	}
	if username == "" {
		username = "testuser"
	}
	if email == "" {
		email = "test@example.com"
	}

	return &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: "hashed_password_123",
		FullName:     "Test User",
		Avatar:       "https://example.com/avatar.jpg",
		Role:         "user",
		IsOnline:     false,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

// CreateTestRoom creates a test collab room with the given admin
func (h *TestHelper) CreateTestRoom(id, adminID uint, companyName string) *models.CollabRoom {
	if id == 0 {
		id = 1
	}
	if adminID == 0 {
		adminID = 1
	}
	if companyName == "" {
		companyName = "Test Company"
	}

	return &models.CollabRoom{
		ID:          id,
		CompanyName: companyName,
		AdminID:     adminID,
		Admin: models.User{
			ID:       adminID,
			Username: "admin",
			Email:    "admin@example.com",
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CreateTestChannel creates a test channel inside a room
func (h *TestHelper) CreateTestChannel(id, roomID uint, name string) *models.Channel {
	if id == 0 {
		id = 1
	}
	if roomID == 0 {
		roomID = 1
	}
	if name == "" {
		name = "general"
	}

	return &models.Channel{
		ID:         id,
		RoomID:     roomID,
		Name:       name,
		Visibility: models.PublicChannel,
		CreatorID:  1,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

// CreateTestMessage creates a test channel message with default values
func (h *TestHelper) CreateTestMessage(id, senderID, channelID uint, content string) *models.ChannelMessage {
	if id == 0 {
		id = 1
	}
	if senderID == 0 {
		senderID = 1
	}
	if channelID == 0 {
		channelID = 1
	}
	if content == "" {
		content = "Test message"
	}

	return &models.ChannelMessage{
		ID:        id,
		ClientID:  fmt.Sprintf("00000000-0000-4000-8000-%012d", id),
		SenderID:  senderID,
		ChannelID: channelID,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Sender: models.User{
			ID:       senderID,
			Username: "sender",
			Email:    "sender@example.com",
		},
	}
}

// SetupTestEnv sets up required environment variables for testing
func (h *TestHelper) SetupTestEnv() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	os.Setenv("DATABASE_URL", "")
	os.Setenv("PASSWORD_MIN_LENGTH", "10")
}

// TeardownTestEnv cleans up environment variables after testing
func (h *TestHelper) TeardownTestEnv() {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("PASSWORD_MIN_LENGTH")
}

// AssertError checks if an error occurred when it should (or shouldn't)
func (h *TestHelper) AssertError(err error, shouldErr bool, testName string) {
	if (err != nil) != shouldErr {
		if shouldErr {
			h.t.Errorf("%s: expected error but got nil", testName)
		} else {
			h.t.Errorf("%s: unexpected error: %v", testName, err)
		}
	}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(got, want interface{}, testName string) {
	if got != want {
		h.t.Errorf("%s: got %v, want %v", testName, got, want)
	}
}

// AssertNotNil checks if a value is not nil
func (h *TestHelper) AssertNotNil(value interface{}, testName string) {
	if value == nil {
		h.t.Errorf("%s: expected non-nil value", testName)
	}
}
