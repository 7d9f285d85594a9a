package repository

import (
	"context"
	"sync"

	"github.com/Dhoini/Customer-microservice/internal/domain"
	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/google/uuid"
)

// InMemoryCustomerRepository реализация репозитория клиентов в памяти.
// Используется в dev-режиме и в тестах. Порядок обхода — порядок вставки.
type InMemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]domain.Customer
	order     []uuid.UUID
	log       *logger.Logger
}

// NewInMemoryCustomerRepository создает новый репозиторий клиентов в памяти
func NewInMemoryCustomerRepository(log *logger.Logger) *InMemoryCustomerRepository {
	return &InMemoryCustomerRepository{
		customers: make(map[uuid.UUID]domain.Customer),
		log:       log,
	}
}

// Save вставляет или полностью заменяет запись по id
func (r *InMemoryCustomerRepository) Save(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[customer.ID]; !exists {
		r.order = append(r.order, customer.ID)
	}
	r.customers[customer.ID] = customer

	r.log.Debug("Saved customer %s in memory", customer.ID)
	return customer, nil
}

// FindByID возвращает клиента по id
func (r *InMemoryCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, exists := r.customers[id]
	if !exists {
		return domain.Customer{}, domain.NewNotFoundError("customer", id.String())
	}
	return customer, nil
}

// FindAll возвращает итератор по снимку текущего состояния.
// Снимок делается под блокировкой, чтобы обход не держал карту занятой.
func (r *InMemoryCustomerRepository) FindAll(ctx context.Context) (CustomerIterator, error) {
	r.mu.RLock()
	snapshot := make([]domain.Customer, 0, len(r.order))
	for _, id := range r.order {
		snapshot = append(snapshot, r.customers[id])
	}
	r.mu.RUnlock()

	return &sliceIterator{customers: snapshot, ctx: ctx}, nil
}

// FindByFirstName возвращает клиентов с точным совпадением имени
func (r *InMemoryCustomerRepository) FindByFirstName(ctx context.Context, firstName string) ([]domain.Customer, error) {
	return r.filter(func(c domain.Customer) bool {
		return c.FirstName == firstName
	}), nil
}

// FindByLastName возвращает клиентов с точным совпадением фамилии
func (r *InMemoryCustomerRepository) FindByLastName(ctx context.Context, lastName string) ([]domain.Customer, error) {
	return r.filter(func(c domain.Customer) bool {
		return c.LastName == lastName
	}), nil
}

// FindByFirstNameAndLastName возвращает клиентов с совпадением обоих полей
func (r *InMemoryCustomerRepository) FindByFirstNameAndLastName(ctx context.Context, firstName, lastName string) ([]domain.Customer, error) {
	return r.filter(func(c domain.Customer) bool {
		return c.FirstName == firstName && c.LastName == lastName
	}), nil
}

// DeleteByID удаляет запись по id
func (r *InMemoryCustomerRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[id]; !exists {
		return domain.NewNotFoundError("customer", id.String())
	}

	delete(r.customers, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.log.Debug("Deleted customer %s from memory", id)
	return nil
}

// Count возвращает общее количество клиентов
func (r *InMemoryCustomerRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.customers)), nil
}

// filter обходит записи в порядке вставки и собирает совпадения
func (r *InMemoryCustomerRepository) filter(match func(domain.Customer) bool) []domain.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Customer
	for _, id := range r.order {
		if c := r.customers[id]; match(c) {
			result = append(result, c)
		}
	}
	return result
}

// sliceIterator итератор по срезу-снимку
type sliceIterator struct {
	customers []domain.Customer
	pos       int
	ctx       context.Context
}

// Next отдает следующую запись; останавливается при отмене контекста
func (it *sliceIterator) Next(customer *domain.Customer) bool {
	if it.ctx != nil && it.ctx.Err() != nil {
		return false
	}
	if it.pos >= len(it.customers) {
		return false
	}
	*customer = it.customers[it.pos]
	it.pos++
	return true
}

// Close для снимка в памяти освобождать нечего
func (it *sliceIterator) Close() error {
	it.customers = nil
	return nil
}
