package types

// CredentialsRequest is the body of sign-up and sign-in.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetLinkRequest is the body of request-password-reset-link.
type PasswordResetLinkRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of reset-password/:token.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// IngredientInput is one ingredient supplied to the generator. Quantity and
// unit may be empty when the client only knows the ingredient name.
type IngredientInput struct {
	Name     string     `json:"name"`
	Quantity FlexString `json:"quantity"`
	Unit     string     `json:"unit"`
}

// GenerateRecipeRequest is the body of POST /recipe/generate.
type GenerateRecipeRequest struct {
	Ingredients []IngredientInput `json:"ingredients"`
}
