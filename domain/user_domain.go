package domain

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login success"
	MessageSuccessLogout         = "logout success"
	MessageSuccessGetUsers       = "success get users"
	MessageSuccessGetUser        = "success get user"
	MessageSuccessChangePassword = "password changed successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetUsers       = "failed to get users"
	MessageFailedGetUser        = "failed to get user"
	MessageFailedChangePassword = "failed to change password"

	ErrUserNotFound           = NewNotFoundError("user not found")
	ErrUsernameTaken          = NewValidationError("a user with that username already exists")
	ErrEmailTaken             = NewValidationError("a user with that email already exists")
	ErrInvalidCredentials     = NewValidationError("Invalid email or password")
	ErrInvalidCurrentPassword = NewValidationError("Invalid current password.")
	ErrAuthRequired           = NewUnauthorizedError("authentication credentials were not provided")
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,username"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=150"`
	}

	RegisterResponse struct {
		Email     string `json:"email"`
		ID        string `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=150"`
	}

	TokenResponse struct {
		AuthToken string `json:"auth_token"`
	}

	ChangePasswordRequest struct {
		NewPassword     string `json:"new_password" validate:"required,min=8,max=150"`
		CurrentPassword string `json:"current_password" validate:"required,max=150"`
	}

	UserResponse struct {
		Email        string `json:"email"`
		ID           string `json:"id"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}
)
