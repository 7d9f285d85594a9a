package repository

import (
	"context"

	"github.com/Dhoini/Customer-microservice/internal/domain"
	"github.com/google/uuid"
)

// CustomerIterator ленивая последовательность клиентов.
// Потребитель сам управляет темпом чтения: Next заполняет переданную структуру
// и возвращает false, когда записи закончились или итератор закрыт.
// Close обязателен и возвращает ошибку чтения, если она была.
type CustomerIterator interface {
	Next(customer *domain.Customer) bool
	Close() error
}

// CustomerRepository определяет контракт доступа к хранилищу клиентов.
// Реализации не ретраят запросы: повторы и пулинг соединений — зона
// ответственности драйвера.
type CustomerRepository interface {
	// Save вставляет или полностью заменяет запись по id
	Save(ctx context.Context, customer domain.Customer) (domain.Customer, error)

	// FindByID возвращает клиента по id или domain.ErrNotFound
	FindByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)

	// FindAll возвращает итератор по всем клиентам в порядке обхода хранилища
	FindAll(ctx context.Context) (CustomerIterator, error)

	// FindByFirstName возвращает клиентов с точным совпадением имени
	FindByFirstName(ctx context.Context, firstName string) ([]domain.Customer, error)

	// FindByLastName возвращает клиентов с точным совпадением фамилии
	FindByLastName(ctx context.Context, lastName string) ([]domain.Customer, error)

	// FindByFirstNameAndLastName возвращает клиентов с точным совпадением
	// имени и фамилии одновременно. Это отдельный запрос к хранилищу,
	// а не пересечение двух одиночных.
	FindByFirstNameAndLastName(ctx context.Context, firstName, lastName string) ([]domain.Customer, error)

	// DeleteByID удаляет запись по id
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// Count возвращает общее количество клиентов
	Count(ctx context.Context) (int64, error)
}
