package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/pikasmart/backend/internal/middleware"
	"github.com/pageza/pikasmart/backend/internal/models"
	"github.com/pageza/pikasmart/backend/internal/service"
	"github.com/pageza/pikasmart/backend/internal/types"
	"go.uber.org/zap"
)

var (
	credentialsRequired = map[error]string{
		service.ErrEmailRequired:    "Email and password are required",
		service.ErrPasswordRequired: "Email and password are required",
	}
	signInMessages = map[error]string{
		service.ErrEmailRequired:    "Email and password are required",
		service.ErrPasswordRequired: "Email and password are required",
		service.ErrUserNotFound:     "User not found - try again with a different email or create an account",
	}
)

// AuthHandler serves account and session endpoints.
type AuthHandler struct {
	authService   service.IAuthService
	secureCookies bool
	log           *zap.Logger
}

func NewAuthHandler(authService service.IAuthService, secureCookies bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
		log:           log,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, requireSession gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/sign-up", h.SignUp)
		auth.POST("/sign-in", h.SignIn)
		auth.POST("/sign-out", h.SignOut)
		auth.GET("/me", requireSession, h.Me)
		auth.POST("/request-password-reset-link", h.RequestPasswordResetLink)
		auth.PATCH("/reset-password", h.ResetPassword)
		auth.PATCH("/reset-password/:token", h.ResetPassword)
	}
}

// bindJSON decodes the body into req. A missing or undecodable body leaves
// req zero-valued so the service reports which field is absent.
func (h *AuthHandler) bindJSON(c *gin.Context, req interface{}) {
	if err := c.ShouldBindJSON(req); err != nil {
		h.log.Debug("ignoring unreadable request body", zap.String("path", c.FullPath()), zap.Error(err))
	}
}

// startSession sets the session cookie for user and writes the response.
func (h *AuthHandler) startSession(c *gin.Context, status int, message string, user *models.User) {
	token, err := h.authService.IssueSession(user)
	if err != nil {
		respondError(c, h.log, err, nil)
		return
	}
	middleware.SetSessionCookie(c, token, h.secureCookies)
	respondOK(c, status, message, gin.H{"user": user})
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req types.CredentialsRequest
	h.bindJSON(c, &req)

	user, err := h.authService.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err, credentialsRequired)
		return
	}

	h.startSession(c, http.StatusCreated, "User registered successfully", user)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req types.CredentialsRequest
	h.bindJSON(c, &req)

	user, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err, signInMessages)
		return
	}

	h.startSession(c, http.StatusOK, "User signed in successfully", user)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.secureCookies)
	respondOK(c, http.StatusOK, "User signed out successfully", nil)
}

// Me re-reads the session user so the response reflects the stored row.
func (h *AuthHandler) Me(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.log, service.ErrUserNotFound, nil)
		return
	}
	user, err := h.authService.GetUserByID(c.Request.Context(), current.ID)
	if err != nil {
		respondError(c, h.log, err, nil)
		return
	}
	respondOK(c, http.StatusOK, "User fetched successfully", gin.H{"user": user})
}

func (h *AuthHandler) RequestPasswordResetLink(c *gin.Context) {
	var req types.PasswordResetLinkRequest
	h.bindJSON(c, &req)

	link, err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.log, err, nil)
		return
	}

	respondOK(c, http.StatusOK, "Password reset link generated successfully", gin.H{"resetPasswordLink": link})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req types.ResetPasswordRequest
	h.bindJSON(c, &req)

	err := h.authService.ResetPassword(c.Request.Context(), c.Param("token"), req.NewPassword)
	if err != nil {
		respondError(c, h.log, err, map[error]string{
			service.ErrPasswordRequired: "New password is required",
		})
		return
	}

	respondOK(c, http.StatusOK, "Password has been reset successfully", nil)
}
