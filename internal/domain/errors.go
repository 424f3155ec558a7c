package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUnauthenticated        ErrorKind = "unauthenticated"
	KindInvalidMediaType       ErrorKind = "invalid_media_type"
	KindIncompletePrecondition ErrorKind = "incomplete_precondition"
	KindUploadInFlight         ErrorKind = "upload_in_flight"
	KindServer                 ErrorKind = "server"
	KindNetwork                ErrorKind = "network"
	KindFetchFailed            ErrorKind = "fetch_failed"
	KindDownload               ErrorKind = "download"
)

const (
	MessageInvalidMediaType  = "Only PNG or JPG images are allowed."
	MessageMissingAssets     = "Please upload both a garment image and a person image before trying on."
	MessageFixAssetErrors    = "Please fix the errors in the uploaded images before trying on."
	MessageUnauthenticated   = "No authentication token found"
	MessageDownloadFallback  = "Image download failed. Try saving the image manually instead."
	MessageUploadAlreadyBusy = "An upload for this image is already in progress."
)

// Error is the structured failure produced at operation boundaries. Message is
// user-facing; Cause keeps the underlying transport or IO error.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Cause      error
}

var (
	ErrUnauthenticated        = &Error{Kind: KindUnauthenticated, Message: MessageUnauthenticated}
	ErrInvalidMediaType       = &Error{Kind: KindInvalidMediaType, Message: MessageInvalidMediaType}
	ErrIncompletePrecondition = &Error{Kind: KindIncompletePrecondition}
	ErrUploadInFlight         = &Error{Kind: KindUploadInFlight, Message: MessageUploadAlreadyBusy}
	ErrServer                 = &Error{Kind: KindServer}
	ErrNetwork                = &Error{Kind: KindNetwork}
	ErrFetchFailed            = &Error{Kind: KindFetchFailed}
	ErrDownload               = &Error{Kind: KindDownload}
)

func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so the package sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// UserMessage returns the text shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return string(e.Kind)
	}

	return err.Error()
}
