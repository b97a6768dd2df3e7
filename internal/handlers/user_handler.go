package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/bitwatch/bitwatch-api/internal/config"
	"github.com/bitwatch/bitwatch-api/internal/dto"
	"github.com/bitwatch/bitwatch-api/internal/middleware"
	"github.com/bitwatch/bitwatch-api/internal/models"
	"github.com/bitwatch/bitwatch-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

const refreshCookieName = "refresh_token"

type UserHandler struct {
	users         *services.UserService
	verifications *services.VerificationService
	tokens        *services.TokenService
	cfg           *config.Config
}

func NewUserHandler(
	users *services.UserService,
	verifications *services.VerificationService,
	tokens *services.TokenService,
	cfg *config.Config,
) *UserHandler {
	return &UserHandler{users: users, verifications: verifications, tokens: tokens, cfg: cfg}
}

// RequestEmailVerification issues a 6-digit code and mails it to the address.
func (h *UserHandler) RequestEmailVerification(c *fiber.Ctx) error {
	var req dto.EmailVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" {
		return badRequest(c, "Email is required")
	}

	if err := h.verifications.RequestVerification(req.Email); err != nil {
		slog.Error("verification request failed", "action", "email_verification", "error", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{"message": "Verification code sent"})
}

// SignUp consumes the verification code and creates the account.
func (h *UserHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Nickname == "" || req.Password == "" || req.AuthNumber == "" {
		return badRequest(c, "Email, nickname, password and verification code are required")
	}
	if req.Password != req.ConfirmPassword {
		return badRequest(c, "Passwords do not match")
	}

	if err := h.verifications.ConfirmVerification(req.Email, req.AuthNumber); err != nil {
		switch {
		case errors.Is(err, services.ErrVerificationNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrAlreadyVerified),
			errors.Is(err, services.ErrCodeMismatch),
			errors.Is(err, services.ErrCodeExpired):
			return badRequest(c, err.Error())
		}
		slog.Error("verification check failed", "action", "signup", "error", err)
		return internalError(c)
	}

	user, err := h.users.Register(req.Email, req.Nickname, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrNicknameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("signup failed", "action", "signup", "error", err)
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Signup successful",
		"user":    toUserResponse(user),
	})
}

// SignIn verifies credentials, returns an access token in the body and sets
// the refresh token as an HttpOnly cookie.
func (h *UserHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	user, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			return badRequest(c, "Invalid email or password")
		}
		slog.Error("signin failed", "action", "signin", "error", err)
		return internalError(c)
	}

	return h.respondWithTokens(c, user, "Login successful")
}

// SignOut clears the refresh cookie. Access tokens are stateless and simply
// expire.
func (h *UserHandler) SignOut(c *fiber.Ctx) error {
	h.clearRefreshCookie(c)
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// Refresh rotates the token pair: it verifies the refresh cookie, issues a
// new access token and re-sets the cookie with a fresh refresh token.
func (h *UserHandler) Refresh(c *fiber.Ctx) error {
	raw := c.Cookies(refreshCookieName)
	if raw == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Refresh token is missing",
		})
	}

	claims, err := h.tokens.VerifyRefreshToken(raw)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid or expired refresh token",
		})
	}

	user, err := h.users.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			// The session is no longer renewable.
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid or expired refresh token",
			})
		}
		slog.Error("refresh failed", "action", "refresh", "error", err)
		return internalError(c)
	}

	return h.respondWithTokens(c, user, "Token refreshed")
}

// ReissueUser returns the authenticated user's current profile.
func (h *UserHandler) ReissueUser(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		slog.Error("reissue failed", "action", "reissue_user", "error", err)
		return internalError(c)
	}

	return c.JSON(fiber.Map{"user": toUserResponse(user)})
}

// ListUsers returns every user. No pagination; this is an administrative
// endpoint.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List()
	if err != nil {
		slog.Error("user listing failed", "action", "list_users", "error", err)
		return internalError(c)
	}

	data := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, toUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": data})
}

func (h *UserHandler) respondWithTokens(c *fiber.Ctx, user *models.User, message string) error {
	accessToken, err := h.tokens.IssueAccessToken(user)
	if err != nil {
		slog.Error("access token issue failed", "error", err)
		return internalError(c)
	}
	refreshToken, err := h.tokens.IssueRefreshToken(user)
	if err != nil {
		slog.Error("refresh token issue failed", "error", err)
		return internalError(c)
	}

	h.setRefreshCookie(c, refreshToken)
	return c.JSON(dto.TokenResponse{
		Message:     message,
		AccessToken: accessToken,
		User:        toUserResponse(user),
	})
}

func (h *UserHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/api/users",
		MaxAge:   int(h.cfg.RefreshTokenExpiry.Seconds()),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: h.cfg.CookieSameSite,
	})
}

func (h *UserHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/api/users",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: h.cfg.CookieSameSite,
	})
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
