package apperror

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is makes wrapped copies of a sentinel match the sentinel itself.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithCause returns a copy of a sentinel carrying the underlying error.
// errors.Is still matches the sentinel.
func WithCause(sentinel *AppError, err error) *AppError {
	return Wrap(err, sentinel.Code, sentinel.Message)
}
