package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/pikasmart/backend/internal/middleware"
	"github.com/pageza/pikasmart/backend/internal/service"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

type errorMapping struct {
	target  error
	status  int
	message string
}

// Order matters: the first match wins, so wrapped generation errors are
// checked before their generic parent.
var errorMappings = []errorMapping{
	{service.ErrEmailRequired, http.StatusBadRequest, "Email is required"},
	{service.ErrPasswordRequired, http.StatusBadRequest, "Password is required"},
	{service.ErrInvalidEmail, http.StatusBadRequest, "Invalid email format"},
	{service.ErrPasswordTooShort, http.StatusBadRequest, "Password must be at least 6 characters long"},
	{service.ErrUserExists, http.StatusConflict, "User already exists"},
	{service.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{service.ErrTokenMissing, http.StatusBadRequest, "No reset token found in the request"},
	{service.ErrTokenExpired, http.StatusBadRequest, "The reset link has expired - try to generate a new one"},
	{service.ErrTokenInvalid, http.StatusBadRequest, "Your link is invalid - try to generate a new one"},
	{service.ErrRecipeNotFound, http.StatusNotFound, "Recipe not found"},
	{service.ErrNotInFavourites, http.StatusNotFound, "Recipe not found in favourites"},
	{service.ErrNotInTrash, http.StatusNotFound, "Recipe not found in trash"},
	{service.ErrNoIngredients, http.StatusBadRequest, "Ingredients are required to generate a recipe"},
	{service.ErrNoJSONObject, http.StatusInternalServerError, "Failed to parse generated recipe"},
	{service.ErrMalformedRecipe, http.StatusInternalServerError, "Failed to parse generated recipe"},
	{service.ErrIncompleteRecipe, http.StatusInternalServerError, "Failed to parse generated recipe"},
	{service.ErrGenerationFailed, http.StatusInternalServerError, "Failed to generate recipe"},
}

// statusFor maps a service error onto an HTTP status and client message.
// Unknown errors are internal failures.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, internalErrorMessage
}

// respondError writes the error envelope for err. overrides replace the
// default message of a matching sentinel for endpoints that word it
// differently. Server errors are logged; their details never reach the client.
func respondError(c *gin.Context, log *zap.Logger, err error, overrides map[error]string) {
	status, message := statusFor(err)
	for target, msg := range overrides {
		if errors.Is(err, target) {
			message = msg
			break
		}
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err),
		)
		_ = c.Error(err)
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func respondOK(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}
