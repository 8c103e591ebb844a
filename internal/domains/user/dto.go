package user

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// NormalizeEmail is applied before every lookup or insert by email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ========================================
// AUTH DTOs
// ========================================

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
			validation.Length(3, 255),
		),
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(1, 50),
			validation.Match(usernamePattern).Error("username may contain letters, digits, '_', '.' and '-'"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthUser is the identity returned next to a fresh token.
type AuthUser struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	TrustedUser bool      `json:"trusted_user"`
}

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        AuthUser  `json:"user"`
}

// ========================================
// PROFILE DTOs
// ========================================

// UpdateProfileRequest changes only the fields present in the body.
// An empty string clears the field.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`

	// Username is rejected when present.
	Username *string `json:"username"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName, validation.Length(0, 100)),
		validation.Field(&r.Bio, validation.Length(0, 500)),
		validation.Field(&r.AvatarURL,
			validation.Length(0, 500),
			is.URL.Error("avatar_url must be a valid URL"),
		),
		validation.Field(&r.Username, validation.Nil.Error("username cannot be changed")),
	)
}

type PublicProfile struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	DisplayName    *string   `json:"display_name"`
	Bio            *string   `json:"bio"`
	AvatarURL      *string   `json:"avatar_url"`
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
}

// ========================================
// FOLLOW DTOs
// ========================================

type BasicUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

type UserList struct {
	Users []BasicUser `json:"users"`
}

func ToBasicUsers(users []*User) []BasicUser {
	out := make([]BasicUser, 0, len(users))
	for _, u := range users {
		out = append(out, BasicUser{ID: u.ID, Email: u.Email, Username: u.Username})
	}
	return out
}
