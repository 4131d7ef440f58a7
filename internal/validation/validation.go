package validation

import (
	"net/mail"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	usernameRe    = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)
	channelNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-_]{1,49}$`)
)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

func ValidateUsername(username string) bool {
	return usernameRe.MatchString(strings.TrimSpace(username))
}

// ValidateChannelName enforces slack-style channel names: lowercase, digits,
// dashes and underscores, 2-50 chars, starting with a letter or digit.
func ValidateChannelName(name string) bool {
	return channelNameRe.MatchString(name)
}

// ValidateClientID checks the client-supplied message dedup key is a UUID.
func ValidateClientID(clientID string) bool {
	_, err := uuid.Parse(clientID)
	return err == nil
}

func PasswordMinLength() int {
	minStr := os.Getenv("PASSWORD_MIN_LENGTH")
	if minStr == "" {
		return 10
	}
	min, err := strconv.Atoi(minStr)
	if err != nil || min < 8 {
		return 10
	}
	return min
}

func ValidatePassword(password string) bool {
	return len(password) >= PasswordMinLength()
}

func MaxMessageLength() int {
	maxStr := os.Getenv("MAX_MESSAGE_LENGTH")
	if maxStr == "" {
		return 4000
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil || max < 1 {
		return 4000
	}
	return max
}

// TrimAndLimit trims whitespace and truncates to the given rune count.
func TrimAndLimit(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return s
}
