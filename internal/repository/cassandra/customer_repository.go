package cassandra

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dhoini/Customer-microservice/internal/domain"
	"github.com/Dhoini/Customer-microservice/internal/repository"
	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// Схема (поддерживается снаружи, см. migrations/customers.cql):
//
//	CREATE TABLE customers (
//	    id         timeuuid PRIMARY KEY,
//	    first_name text,
//	    last_name  text
//	);
//	CREATE INDEX customers_first_name_idx ON customers (first_name);
//	CREATE INDEX customers_last_name_idx  ON customers (last_name);
//
// Поиск по одному имени идет через вторичный индекс, комбинированный
// поиск — явно отфильтрованный запрос (ALLOW FILTERING).

// CassandraCustomerRepository реализация репозитория клиентов поверх Cassandra
type CassandraCustomerRepository struct {
	session *gocql.Session
	log     *logger.Logger
}

// NewCassandraCustomerRepository создает новый репозиторий клиентов поверх Cassandra
func NewCassandraCustomerRepository(session *gocql.Session, log *logger.Logger) *CassandraCustomerRepository {
	return &CassandraCustomerRepository{
		session: session,
		log:     log,
	}
}

// Save вставляет или полностью заменяет запись по id.
// INSERT в Cassandra — upsert: строка либо заменяется целиком, либо не пишется.
func (r *CassandraCustomerRepository) Save(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	query := `INSERT INTO customers (id, first_name, last_name) VALUES (?, ?, ?)`

	err := r.session.Query(query,
		gocql.UUID(customer.ID),
		customer.FirstName,
		customer.LastName,
	).WithContext(ctx).Exec()
	if err != nil {
		return domain.Customer{}, fmt.Errorf("failed to save customer: %w", err)
	}

	return customer, nil
}

// FindByID возвращает клиента по id
func (r *CassandraCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	query := `SELECT id, first_name, last_name FROM customers WHERE id = ?`

	var (
		gid       gocql.UUID
		firstName string
		lastName  string
	)
	err := r.session.Query(query, gocql.UUID(id)).WithContext(ctx).Scan(&gid, &firstName, &lastName)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return domain.Customer{}, domain.NewNotFoundError("customer", id.String())
		}
		return domain.Customer{}, fmt.Errorf("failed to get customer: %w", err)
	}

	return domain.Customer{ID: uuid.UUID(gid), FirstName: firstName, LastName: lastName}, nil
}

// FindAll возвращает итератор по всем клиентам в порядке обхода хранилища.
// Результат не буферизуется: страницы вычитываются по мере Next.
func (r *CassandraCustomerRepository) FindAll(ctx context.Context) (repository.CustomerIterator, error) {
	query := `SELECT id, first_name, last_name FROM customers`

	iter := r.session.Query(query).WithContext(ctx).Iter()
	return &cqlIterator{iter: iter}, nil
}

// FindByFirstName возвращает клиентов с точным совпадением имени
func (r *CassandraCustomerRepository) FindByFirstName(ctx context.Context, firstName string) ([]domain.Customer, error) {
	query := `SELECT id, first_name, last_name FROM customers WHERE first_name = ?`
	return r.queryCustomers(ctx, query, firstName)
}

// FindByLastName возвращает клиентов с точным совпадением фамилии
func (r *CassandraCustomerRepository) FindByLastName(ctx context.Context, lastName string) ([]domain.Customer, error) {
	query := `SELECT id, first_name, last_name FROM customers WHERE last_name = ?`
	return r.queryCustomers(ctx, query, lastName)
}

// FindByFirstNameAndLastName возвращает клиентов с совпадением обоих полей.
// Индекс есть только по одной колонке, вторая дофильтровывается движком,
// поэтому запросу нужен ALLOW FILTERING.
func (r *CassandraCustomerRepository) FindByFirstNameAndLastName(ctx context.Context, firstName, lastName string) ([]domain.Customer, error) {
	query := `SELECT id, first_name, last_name FROM customers WHERE first_name = ? AND last_name = ? ALLOW FILTERING`
	return r.queryCustomers(ctx, query, firstName, lastName)
}

// DeleteByID удаляет запись по id
func (r *CassandraCustomerRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customers WHERE id = ?`

	if err := r.session.Query(query, gocql.UUID(id)).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// Count возвращает общее количество клиентов
func (r *CassandraCustomerRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM customers`

	var count int64
	if err := r.session.Query(query).WithContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// queryCustomers выполняет запрос и вычитывает все строки
func (r *CassandraCustomerRepository) queryCustomers(ctx context.Context, query string, args ...interface{}) ([]domain.Customer, error) {
	iter := r.session.Query(query, args...).WithContext(ctx).Iter()

	var (
		customers []domain.Customer
		gid       gocql.UUID
		firstName string
		lastName  string
	)
	for iter.Scan(&gid, &firstName, &lastName) {
		customers = append(customers, domain.Customer{
			ID:        uuid.UUID(gid),
			FirstName: firstName,
			LastName:  lastName,
		})
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	return customers, nil
}

// cqlIterator адаптер gocql.Iter под repository.CustomerIterator
type cqlIterator struct {
	iter *gocql.Iter
}

// Next вычитывает следующую строку
func (it *cqlIterator) Next(customer *domain.Customer) bool {
	var (
		gid       gocql.UUID
		firstName string
		lastName  string
	)
	if !it.iter.Scan(&gid, &firstName, &lastName) {
		return false
	}

	customer.ID = uuid.UUID(gid)
	customer.FirstName = firstName
	customer.LastName = lastName
	return true
}

// Close завершает обход и возвращает ошибку чтения, если она была
func (it *cqlIterator) Close() error {
	return it.iter.Close()
}
