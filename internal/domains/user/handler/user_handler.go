package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/user"
	"boardgame-tracker/internal/shared/middleware"
	"boardgame-tracker/internal/shared/response"
	"boardgame-tracker/internal/shared/utils"
)

var userErrorMap = map[error]response.ErrorMapping{
	user.ErrUserNotFound:          {Status: http.StatusNotFound, Code: "USER_NOT_FOUND", Message: "User not found"},
	user.ErrEmailAlreadyExists:    {Status: http.StatusConflict, Code: "EMAIL_EXISTS", Message: "Email or username already in use"},
	user.ErrUsernameAlreadyExists: {Status: http.StatusConflict, Code: "USERNAME_EXISTS", Message: "Email or username already in use"},
	user.ErrInvalidCredentials:    {Status: http.StatusUnauthorized, Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"},
	user.ErrAccountLocked:         {Status: http.StatusTooManyRequests, Code: "ACCOUNT_LOCKED", Message: "Too many failed login attempts, try again later"},
	user.ErrCannotFollowSelf:      {Status: http.StatusBadRequest, Code: "CANNOT_FOLLOW_SELF", Message: "Cannot follow yourself"},
}

// HandleUserError writes the HTTP response for a user domain error.
func HandleUserError(c *gin.Context, err error) bool {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		response.ValidationFailed(c, fieldErrs)
		return true
	}
	return response.HandleDomainError(c, err, userErrorMap)
}

type UserHandler struct {
	service user.Service
	follows user.FollowService
}

func NewUserHandler(service user.Service, follows user.FollowService) *UserHandler {
	return &UserHandler{service: service, follows: follows}
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
	}
	return userID, ok
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register - POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Login - POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// GetPublicProfile - GET /users/:id
// The segment is a username; it shares the wildcard name with /users/:id/follow.
func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	profile, err := h.service.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// GetMe - GET /me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	u, err := h.service.GetMe(c.Request.Context(), userID)
	if HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, u)
}

// UpdateMe - PATCH /me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, u)
}

// ========================================
// FOLLOW ENDPOINTS
// ========================================

type followState struct {
	Following bool `json:"following"`
}

// FollowUser - POST /users/:id/follow
func (h *UserHandler) FollowUser(c *gin.Context) {
	h.followByID(c, true)
}

// UnfollowUser - DELETE /users/:id/follow
func (h *UserHandler) UnfollowUser(c *gin.Context) {
	h.followByID(c, false)
}

func (h *UserHandler) followByID(c *gin.Context, follow bool) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	targetID := utils.ParseUUID(c.Param("id"))
	if targetID == uuid.Nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	var err error
	if follow {
		err = h.follows.FollowByID(c.Request.Context(), userID, targetID)
	} else {
		err = h.follows.UnfollowByID(c.Request.Context(), userID, targetID)
	}
	if HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, followState{Following: follow})
}

// Follow - POST /me/following/:username
func (h *UserHandler) Follow(c *gin.Context) {
	h.followByUsername(c, true)
}

// Unfollow - DELETE /me/following/:username
func (h *UserHandler) Unfollow(c *gin.Context) {
	h.followByUsername(c, false)
}

func (h *UserHandler) followByUsername(c *gin.Context, follow bool) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var err error
	if follow {
		err = h.follows.Follow(c.Request.Context(), userID, c.Param("username"))
	} else {
		err = h.follows.Unfollow(c.Request.Context(), userID, c.Param("username"))
	}
	if HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, followState{Following: follow})
}

// ListFollowing - GET /me/following
func (h *UserHandler) ListFollowing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.follows.ListFollowing(c.Request.Context(), userID)
	if HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, list)
}

// ListFollowers - GET /me/followers
func (h *UserHandler) ListFollowers(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.follows.ListFollowers(c.Request.Context(), userID)
	if HandleUserError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, list)
}
