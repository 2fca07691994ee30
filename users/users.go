package users

import (
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a user's authorization tier.
type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

// DefaultImageURL is the placeholder avatar used when a user registers
// without uploading a profile image.
const DefaultImageURL = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

type User struct {
	ID           string    `json:"id,omitempty"`         // Unique identifier, immutable once created
	Name         string    `json:"name"`                 // Display name
	Email        string    `json:"email"`                // Email address, unique across users
	Image        string    `json:"image,omitempty"`      // Profile image URL
	PasswordHash string    `json:"-"`                    // Hashed password - never serialize
	Role         RoleType  `json:"role"`                 // Authorization tier (user or admin)
	CreatedAt    time.Time `json:"created_at,omitempty"` // When the user registered
}

// ValidatePassword checks that a plaintext password meets the minimum length
// requirement. Composition rules are deliberately not enforced.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// ValidateEmail checks that an email address is well formed.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("please provide an email")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("please enter a valid email")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidRole reports whether role is one of the known authorization tiers.
func ValidRole(role RoleType) bool {
	return role == RoleUser || role == RoleAdmin
}
