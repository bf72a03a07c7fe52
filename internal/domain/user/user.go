package user

import (
	"fmt"
	"strings"
	"time"
)

// User is a registered account. Users authenticated elsewhere carry the
// configured external-auth marker instead of a password hash.
type User struct {
	id           string
	userName     string
	passwordHash string
	screenName   string
	fullName     string
	email        string
	locale       string
	timezone     string
	enabled      bool
	createdAt    time.Time
}

func NewUser(id, userName, passwordHash, screenName, fullName, email, locale, timezone string) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, fmt.Errorf("user name is required")
	}
	if len(userName) > 255 {
		return nil, fmt.Errorf("user name exceeds maximum length of 255 characters")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password is required")
	}
	if screenName == "" {
		screenName = userName
	}

	return &User{
		id:           id,
		userName:     userName,
		passwordHash: passwordHash,
		screenName:   screenName,
		fullName:     fullName,
		email:        email,
		locale:       locale,
		timezone:     timezone,
		enabled:      true,
		createdAt:    time.Now().UTC(),
	}, nil
}

// NewExternalUser provisions a local account from externally resolved details.
func NewExternalUser(id string, d Details) (*User, error) {
	u, err := NewUser(id, d.UserName, d.Password, d.ScreenName, d.FullName, d.Email, d.Locale, d.Timezone)
	if err != nil {
		return nil, err
	}
	u.enabled = d.Enabled
	return u, nil
}

func ReconstructUser(id, userName, passwordHash, screenName, fullName, email, locale, timezone string, enabled bool, createdAt time.Time) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if userName == "" {
		return nil, fmt.Errorf("user name cannot be empty")
	}
	return &User{
		id:           id,
		userName:     userName,
		passwordHash: passwordHash,
		screenName:   screenName,
		fullName:     fullName,
		email:        email,
		locale:       locale,
		timezone:     timezone,
		enabled:      enabled,
		createdAt:    createdAt,
	}, nil
}

func (u *User) ID() string           { return u.id }
func (u *User) UserName() string     { return u.userName }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) ScreenName() string   { return u.screenName }
func (u *User) FullName() string     { return u.fullName }
func (u *User) Email() string        { return u.email }
func (u *User) Locale() string       { return u.locale }
func (u *User) Timezone() string     { return u.timezone }
func (u *User) IsEnabled() bool      { return u.enabled }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// IsExternal reports whether the account authenticates outside the user table.
func (u *User) IsExternal(marker string) bool {
	return u.passwordHash == marker
}

func (u *User) Disable() {
	u.enabled = false
}
