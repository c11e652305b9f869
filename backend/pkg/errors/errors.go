package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeStore represents storage-layer errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeSocial represents social-graph invariant errors
	ErrorTypeSocial ErrorType = "social"
	// ErrorTypeCache represents cache-layer errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Store Errors

// ErrUserNotFound is returned when a user id does not resolve in storage
type ErrUserNotFound struct {
	*BaseError
	UserID string
}

func NewUserNotFound(userID string) *ErrUserNotFound {
	return &ErrUserNotFound{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("user not found: %s", userID), nil),
		UserID:    userID,
	}
}

// ErrStoreUnavailable is returned when the backing store cannot be reached
type ErrStoreUnavailable struct {
	*BaseError
	URI string
}

func NewStoreUnavailable(uri string, err error) *ErrStoreUnavailable {
	return &ErrStoreUnavailable{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("store unavailable: %s", uri), err),
		URI:       uri,
	}
}

// Social Graph Errors

// ErrStillLinked is returned when deleting a user that still has friendships
type ErrStillLinked struct {
	*BaseError
	UserID      string
	FriendCount int
}

func NewStillLinked(userID string, friendCount int) *ErrStillLinked {
	return &ErrStillLinked{
		BaseError:   NewBaseError(ErrorTypeSocial, fmt.Sprintf("user still linked to %d friends: %s", friendCount, userID), nil),
		UserID:      userID,
		FriendCount: friendCount,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsNotFound checks whether err or any error it wraps is an ErrUserNotFound
func IsNotFound(err error) bool {
	for err != nil {
		if _, ok := err.(*ErrUserNotFound); ok {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// IsConflict checks whether err or any error it wraps is an ErrStillLinked
func IsConflict(err error) bool {
	for err != nil {
		if _, ok := err.(*ErrStillLinked); ok {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
