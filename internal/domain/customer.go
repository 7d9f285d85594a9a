package domain

import (
	"github.com/google/uuid"
)

// Customer представляет собой модель клиента.
// ID назначается один раз при создании и больше не меняется.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
}

// CustomerRequest представляет запрос на создание/обновление клиента.
// Переданный клиентом id игнорируется: при создании генерируется новый,
// при обновлении сохраняется исходный.
type CustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// NewCustomer создает нового клиента со свежим time-ordered идентификатором (UUID v1).
func NewCustomer(firstName, lastName string) Customer {
	return Customer{
		ID:        newTimeOrderedID(),
		FirstName: firstName,
		LastName:  lastName,
	}
}

// CustomerWithID создает клиента с уже существующим идентификатором.
// Используется при полной замене записи (update): id остается прежним,
// заменяются только имя и фамилия.
func CustomerWithID(id uuid.UUID, firstName, lastName string) Customer {
	return Customer{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
	}
}

// newTimeOrderedID генерирует UUID v1 (time-based).
// uuid.NewUUID может вернуть ошибку только при недоступности системных часов,
// в этом случае падаем на случайный v4, чтобы не оставить запись без ключа.
func newTimeOrderedID() uuid.UUID {
	id, err := uuid.NewUUID()
	if err != nil {
		return uuid.New()
	}
	return id
}
