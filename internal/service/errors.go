package service

import "errors"

// Credential and account errors
var (
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Capability token errors
var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Recipe and membership errors
var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrNotInFavourites = errors.New("recipe not found in favourites")
	ErrNotInTrash      = errors.New("recipe not found in trash")
)

// Generation errors
var (
	ErrNoIngredients    = errors.New("ingredients are required")
	ErrGenerationFailed = errors.New("recipe generation failed")
	ErrNoJSONObject     = errors.New("no JSON object in generator response")
	ErrMalformedRecipe  = errors.New("generator response is not valid JSON")
	ErrIncompleteRecipe = errors.New("generated recipe is incomplete")
	ErrCircuitOpen      = errors.New("generator circuit is open")
)
