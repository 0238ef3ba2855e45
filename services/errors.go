package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-ordering/models"
)

var (
	ErrValidation             = errors.New("validation error")
	ErrNotFound               = errors.New("not found")
	ErrItemUnavailable        = errors.New("item unavailable")
	ErrModifierOptionNotFound = errors.New("modifier option not found")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrConflict               = errors.New("conflict")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// ValidationError reports a malformed or missing request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type ItemUnavailableError struct {
	ItemID uint
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("item %d is not available", e.ItemID)
}

func (e *ItemUnavailableError) Is(target error) bool { return target == ErrItemUnavailable }

type ModifierOptionNotFoundError struct {
	ItemID   uint
	OptionID uint
}

func (e *ModifierOptionNotFoundError) Error() string {
	return fmt.Sprintf("modifier option %d not found for item %d", e.OptionID, e.ItemID)
}

func (e *ModifierOptionNotFoundError) Is(target error) bool {
	return target == ErrModifierOptionNotFound
}

type InvalidStatusError struct {
	Value string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q", e.Value)
}

func (e *InvalidStatusError) Is(target error) bool { return target == ErrInvalidStatus }

type TransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// ConflictError refuses a write that would break a reference held elsewhere.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
