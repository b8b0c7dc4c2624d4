package errors

// BadRequestError is returned for list requests with invalid parameters
type BadRequestError struct {
	msg string
}

func (e *BadRequestError) Error() string {
	return e.msg
}

func NewBadRequestError(text string) error {
	return &BadRequestError{text}
}
