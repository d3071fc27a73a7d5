package tcos

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// StoreError flattens a transport failure into the code/name/message triple
// the rest of the package works with. Nothing above the client boundary
// inspects SDK error types directly.
type StoreError struct {
	Code    string
	Name    string
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s failed (%s): %s", e.Name, e.Code, e.Message)
}

func wrapStoreError(operation string, err error) *StoreError {
	var api smithy.APIError
	if errors.As(err, &api) {
		return &StoreError{
			Code:    api.ErrorCode(),
			Name:    operation,
			Message: api.ErrorMessage(),
		}
	}
	return &StoreError{
		Code:    "Unknown",
		Name:    operation,
		Message: err.Error(),
	}
}

// isPermissionDenied reports whether an existence probe failed because the
// credentials lack read access, as opposed to the object being absent.
func isPermissionDenied(err error) bool {
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		return false
	}
	switch storeErr.Code {
	case "AccessDenied", "Forbidden", "403":
		return true
	}
	return false
}

// EncodingError is a terminal per-file failure from the content codec.
type EncodingError struct {
	Name string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding %s: %v", e.Name, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// UploadError is raised once a file's retry budget is exhausted. It carries
// the last remote error's code/name/message alongside the attempt count.
type UploadError struct {
	Name      string
	RemoteKey string
	Attempts  int
	Code      string
	ErrName   string
	Message   string
	Err       error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %s as %s failed after %d attempts: %s (%s): %s",
		e.Name, e.RemoteKey, e.Attempts, e.ErrName, e.Code, e.Message)
}

func (e *UploadError) Unwrap() error { return e.Err }

func newUploadError(name, remoteKey string, attempts int, last error) *UploadError {
	uploadErr := &UploadError{
		Name:      name,
		RemoteKey: remoteKey,
		Attempts:  attempts,
		Err:       last,
	}
	var storeErr *StoreError
	if errors.As(last, &storeErr) {
		uploadErr.Code = storeErr.Code
		uploadErr.ErrName = storeErr.Name
		uploadErr.Message = storeErr.Message
	} else {
		uploadErr.Code = "Unknown"
		uploadErr.Message = last.Error()
	}
	return uploadErr
}

// BatchError wraps the first terminal per-file failure of a batch.
type BatchError struct {
	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("upload batch failed: %v", e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
