package domain

import (
	"errors"
	"fmt"
)

// Application errors
var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput неверные входные данные
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")

	// ErrCustomerNotFound клиент не найден
	ErrCustomerNotFound = errors.New("customer not found")
)

// NotFoundError представляет ошибку "не найдено" с контекстом сущности
type NotFoundError struct {
	Entity string
	ID     string
}

// Error реализует интерфейс error
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// Is проверяет, является ли ошибка ошибкой типа "не найдено"
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError создает новую ошибку "не найдено"
func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{
		Entity: entity,
		ID:     id,
	}
}

// StorageError представляет ошибку уровня хранилища
type StorageError struct {
	Op          string
	Message     string
	OriginalErr error
}

// Error реализует интерфейс error
func (e *StorageError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("storage error [%s]: %s: %v", e.Op, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("storage error [%s]: %s", e.Op, e.Message)
}

// Unwrap возвращает оригинальную ошибку
func (e *StorageError) Unwrap() error {
	return e.OriginalErr
}

// NewStorageError создает новую ошибку хранилища
func NewStorageError(op, message string, err error) *StorageError {
	return &StorageError{
		Op:          op,
		Message:     message,
		OriginalErr: err,
	}
}
