package handlers

const (
	ErrInvalidFormData       = "Invalid form data"
	ErrInvalidRequest        = "Invalid request"
	ErrForbidden             = "Forbidden"
	ErrTooManyRequests       = "Too many requests. Please wait a moment and try again."
	ErrInternalServerError   = "Internal server error"
	ErrInternalServerErrorUC = "Internal Server Error"
)
