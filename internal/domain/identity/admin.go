package identity

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shopfront/backend/internal/domain/shared"
)

// Password cost for bcrypt
const bcryptCost = 12

// Admin represents a back-office administrator account
type Admin struct {
	shared.BaseAggregateRoot
	Username       string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash   string     `gorm:"type:varchar(200);not null"`
	DisplayName    string     `gorm:"type:varchar(200)"`
	IsActive       bool       `gorm:"not null;default:true"`
	LastLoginAt    *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (Admin) TableName() string {
	return "admins"
}

// NewAdmin creates a new active admin account
func NewAdmin(username, password string) (*Admin, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	admin := &Admin{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          strings.ToLower(strings.TrimSpace(username)),
		PasswordHash:      passwordHash,
		IsActive:          true,
	}

	admin.AddDomainEvent(NewAdminCreatedEvent(admin))

	return admin, nil
}

// SetDisplayName sets the admin's display name
func (a *Admin) SetDisplayName(displayName string) error {
	if len(displayName) > 200 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 200 characters")
	}

	a.DisplayName = strings.TrimSpace(displayName)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// ChangePassword changes the admin's password after verifying the old one
func (a *Admin) ChangePassword(oldPassword, newPassword string) error {
	if !a.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}

	return a.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one
func (a *Admin) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	a.PasswordHash = passwordHash
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// VerifyPassword verifies if the provided password matches
func (a *Admin) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// Deactivate disables the account
func (a *Admin) Deactivate() error {
	if !a.IsActive {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "Admin is already deactivated")
	}

	a.IsActive = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Activate re-enables the account and clears any lock
func (a *Admin) Activate() error {
	if a.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Admin is already active")
	}

	a.IsActive = true
	a.FailedAttempts = 0
	a.LockedUntil = nil
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// RecordLoginSuccess records a successful login
func (a *Admin) RecordLoginSuccess() {
	now := time.Now()
	a.LastLoginAt = &now
	a.FailedAttempts = 0
	a.LockedUntil = nil
	a.UpdatedAt = now
	a.IncrementVersion()
}

// RecordLoginFailure records a failed login attempt.
// Returns true if the account became locked.
func (a *Admin) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	a.FailedAttempts++
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	if maxAttempts > 0 && a.FailedAttempts >= maxAttempts {
		lockedUntil := time.Now().Add(lockDuration)
		a.LockedUntil = &lockedUntil
		return true
	}

	return false
}

// IsLocked returns true if the account is currently locked
func (a *Admin) IsLocked() bool {
	return a.LockedUntil != nil && time.Now().Before(*a.LockedUntil)
}

// CanLogin returns true if the account may authenticate
func (a *Admin) CanLogin() bool {
	return a.IsActive && !a.IsLocked()
}

// Validation functions

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}

	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)
	if !usernameRegex.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username can only contain letters, numbers, underscores, hyphens, and dots")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
