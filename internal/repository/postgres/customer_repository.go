package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dhoini/Customer-microservice/internal/domain"
	"github.com/Dhoini/Customer-microservice/internal/repository"
	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCustomerRepository реализация репозитория клиентов через PostgreSQL.
// Альтернативный бэкенд за тем же портом, выбирается через storage.driver.
type PostgresCustomerRepository struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

// NewPostgresCustomerRepository создает новый репозиторий клиентов через PostgreSQL
func NewPostgresCustomerRepository(db *pgxpool.Pool, log *logger.Logger) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		db:  db,
		log: log,
	}
}

// Save вставляет или полностью заменяет запись по id
func (r *PostgresCustomerRepository) Save(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	query := `
		INSERT INTO customers (id, first_name, last_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name
	`

	if _, err := r.db.Exec(ctx, query, customer.ID, customer.FirstName, customer.LastName); err != nil {
		return domain.Customer{}, fmt.Errorf("failed to save customer: %w", err)
	}
	return customer, nil
}

// FindByID возвращает клиента по id
func (r *PostgresCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	query := `SELECT id, first_name, last_name FROM customers WHERE id = $1`

	var customer domain.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(&customer.ID, &customer.FirstName, &customer.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, domain.NewNotFoundError("customer", id.String())
		}
		return domain.Customer{}, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// FindAll возвращает итератор по всем клиентам.
// Строки вычитываются по мере Next, весь результат в память не поднимается.
func (r *PostgresCustomerRepository) FindAll(ctx context.Context) (repository.CustomerIterator, error) {
	query := `SELECT id, first_name, last_name FROM customers ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	return &rowsIterator{rows: rows}, nil
}

// FindByFirstName возвращает клиентов с точным совпадением имени
func (r *PostgresCustomerRepository) FindByFirstName(ctx context.Context, firstName string) ([]domain.Customer, error) {
	query := `SELECT id, first_name, last_name FROM customers WHERE first_name = $1 ORDER BY id`
	return r.queryCustomers(ctx, query, firstName)
}

// FindByLastName возвращает клиентов с точным совпадением фамилии
func (r *PostgresCustomerRepository) FindByLastName(ctx context.Context, lastName string) ([]domain.Customer, error) {
	query := `SELECT id, first_name, last_name FROM customers WHERE last_name = $1 ORDER BY id`
	return r.queryCustomers(ctx, query, lastName)
}

// FindByFirstNameAndLastName возвращает клиентов с совпадением обоих полей
func (r *PostgresCustomerRepository) FindByFirstNameAndLastName(ctx context.Context, firstName, lastName string) ([]domain.Customer, error) {
	query := `SELECT id, first_name, last_name FROM customers WHERE first_name = $1 AND last_name = $2 ORDER BY id`
	return r.queryCustomers(ctx, query, firstName, lastName)
}

// DeleteByID удаляет запись по id
func (r *PostgresCustomerRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM customers WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// Count возвращает общее количество клиентов
func (r *PostgresCustomerRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM customers`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// queryCustomers выполняет запрос и вычитывает все строки
func (r *PostgresCustomerRepository) queryCustomers(ctx context.Context, query string, args ...interface{}) ([]domain.Customer, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.ID, &customer.FirstName, &customer.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}
	return customers, nil
}

// rowsIterator адаптер pgx.Rows под repository.CustomerIterator
type rowsIterator struct {
	rows    pgx.Rows
	scanErr error
}

// Next вычитывает следующую строку
func (it *rowsIterator) Next(customer *domain.Customer) bool {
	if !it.rows.Next() {
		return false
	}
	if err := it.rows.Scan(&customer.ID, &customer.FirstName, &customer.LastName); err != nil {
		it.scanErr = err
		return false
	}
	return true
}

// Close завершает обход и возвращает ошибку чтения, если она была
func (it *rowsIterator) Close() error {
	it.rows.Close()
	if it.scanErr != nil {
		return it.scanErr
	}
	return it.rows.Err()
}
