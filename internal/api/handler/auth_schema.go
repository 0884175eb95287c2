package handler

// messageResponse is the envelope for operations that only acknowledge.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse documents the shape of error replies for swagger. The actual
// body is produced by the central HTTP error handler.
type errorResponse struct {
	Error string `json:"error"`
}

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
