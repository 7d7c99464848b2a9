package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Username  string `json:"username"   validate:"required,min=3"`
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Password  string `json:"password"   validate:"required,min=6"`
	Role      string `json:"role"       validate:"omitempty,oneof=user admin"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- User ---

type changePasswordRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"     validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Todos ---

type todoRequest struct {
	Title       string `json:"title"       validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=3"`
	Priority    int    `json:"priority"    validate:"required,gt=0,lt=6"`
	Complete    bool   `json:"complete"`
}

type todoResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    int       `json:"priority"`
	Complete    bool      `json:"complete"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// adminTodoResponse additionally exposes the owner, which per-user views omit.
type adminTodoResponse struct {
	todoResponse
	OwnerID string `json:"owner_id"`
}

// --- Books ---

type bookRequest struct {
	Title    string `json:"title"    validate:"required,min=3"`
	Author   string `json:"author"   validate:"required"`
	Category string `json:"category" validate:"required"`
	Rating   int    `json:"rating"   validate:"required,gt=0,lt=6"`
}

type bookResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Rating   int    `json:"rating"`
}
