package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trailwatch/trailwatch/internal/config"
	"github.com/trailwatch/trailwatch/internal/repository"
	"github.com/trailwatch/trailwatch/internal/utils"
)

const resetTokenTTL = time.Hour

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg         config.Config
	Users       *repository.UserRepo
	ResetTokens *repository.ResetTokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.ResetTokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, ResetTokens: t}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type forgotPasswordReq struct {
	Email string `json:"email"`
}
type resetPasswordReq struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func validateCredentials(email, password string) []fieldError {
	var details []fieldError
	if email == "" || !strings.Contains(email, "@") {
		details = append(details, fieldError{"email", "Please provide a valid email"})
	}
	if len(password) < 6 {
		details = append(details, fieldError{"password", "Password must be at least 6 characters"})
	}
	return details
}

// Register handles POST /api/auth/register: create the user and log
// them in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input format")
	}
	req.Email = strings.TrimSpace(req.Email)
	details := validateCredentials(req.Email, req.Password)
	if strings.TrimSpace(req.Name) == "" {
		details = append(details, fieldError{"name", "Name is required"})
	}
	if details != nil {
		return failValidation(c, details)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	exists, err := h.Users.EmailExists(ctx, req.Email)
	if err != nil {
		return failRepo(c, err, "")
	}
	if exists {
		return fail(c, http.StatusBadRequest, "Email already registered")
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return failRepo(c, err, "")
	}

	user, err := h.Users.Create(ctx, req.Email, hash, strings.TrimSpace(req.Name))
	if err != nil {
		// A concurrent register may win the race after the exists check.
		if errors.Is(err, repository.ErrDuplicate) {
			return fail(c, http.StatusBadRequest, "Email already registered")
		}
		return failRepo(c, err, "")
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, user, h.Cfg.TokenTTLHours)
	if err != nil {
		return failRepo(c, err, "")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Registration successful",
		"data":    echo.Map{"user": user.Public(), "token": token.Token},
	})
}

// Login handles POST /api/auth/login. Unknown email and wrong password
// produce the same message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input format")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusBadRequest, "Invalid email or password")
		}
		return failRepo(c, err, "")
	}
	if !utils.VerifyPassword(user.PasswordHash, req.Password) {
		return fail(c, http.StatusBadRequest, "Invalid email or password")
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, user, h.Cfg.TokenTTLHours)
	if err != nil {
		return failRepo(c, err, "")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"data":    echo.Map{"user": user.Public(), "token": token.Token},
	})
}

// Me handles GET /api/auth/me (protected).
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := currentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return failRepo(c, err, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": user.Public()})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response
// is identical whether or not the email exists, so the endpoint cannot
// be used to probe for accounts. The reset link goes to the server log;
// a real deployment would send it by email.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input format")
	}

	const successMessage = "If an account with that email exists, a password reset link has been sent."

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return failRepo(c, err, "")
	}
	if err == nil {
		token, err := utils.NewResetToken()
		if err != nil {
			return failRepo(c, err, "")
		}
		expiresAt := time.Now().UTC().Add(resetTokenTTL)
		if err := h.ResetTokens.Issue(ctx, user.ID, token, expiresAt); err != nil {
			return failRepo(c, err, "")
		}
		log.Printf("password reset link for %s: %s/reset-password?token=%s",
			user.Email, h.Cfg.FrontendURL, token)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": successMessage})
}

// ResetPassword handles POST /api/auth/reset-password. A token redeems
// exactly once; reuse fails the same way as an unknown token.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid input format")
	}
	var details []fieldError
	if req.Token == "" {
		details = append(details, fieldError{"token", "Reset token is required"})
	}
	if len(req.Password) < 6 {
		details = append(details, fieldError{"password", "Password must be at least 6 characters"})
	}
	if details != nil {
		return failValidation(c, details)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	record, err := h.ResetTokens.Validate(ctx, req.Token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusBadRequest,
				"Reset token is invalid or has expired. Please request a new password reset.")
		}
		return failRepo(c, err, "")
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return failRepo(c, err, "")
	}
	if err := h.Users.UpdatePassword(ctx, record.UserID, hash); err != nil {
		return failRepo(c, err, "")
	}
	if err := h.ResetTokens.MarkUsed(ctx, req.Token); err != nil {
		return failRepo(c, err, "")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Password has been reset successfully. You can now log in with your new password.",
	})
}
