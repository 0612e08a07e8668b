package error

// GenericError is implemented by application errors that know their own
// HTTP representation.
type GenericError interface {
	error
	ErrCode() string
	StatusCode() int
}
