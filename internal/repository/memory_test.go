package repository

import (
	"context"
	"io"
	"testing"

	"github.com/Dhoini/Customer-microservice/internal/domain"
	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *InMemoryCustomerRepository {
	t.Helper()
	log := logger.New(logger.ERROR)
	log.SetOutput(io.Discard)
	return NewInMemoryCustomerRepository(log)
}

func seedAvengers(t *testing.T, repo *InMemoryCustomerRepository) []domain.Customer {
	t.Helper()
	ctx := context.Background()
	seed := []domain.Customer{
		domain.NewCustomer("Nick", "Fury"),
		domain.NewCustomer("Tony", "Stark"),
		domain.NewCustomer("Bruce", "Banner"),
		domain.NewCustomer("Peter", "Parker"),
	}
	for _, c := range seed {
		_, err := repo.Save(ctx, c)
		require.NoError(t, err)
	}
	return seed
}

func TestSaveAndFindByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	customer := domain.NewCustomer("Tony", "Stark")
	saved, err := repo.Save(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, customer, saved)

	found, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, customer, found)
}

func TestSaveReplacesExistingRow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	customer := domain.NewCustomer("Tony", "Stark")
	_, err := repo.Save(ctx, customer)
	require.NoError(t, err)

	replacement := domain.CustomerWithID(customer.ID, "Anthony", "Stark")
	_, err = repo.Save(ctx, replacement)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anthony", found.FirstName)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindByNames(t *testing.T) {
	repo := newTestRepo(t)
	seedAvengers(t, repo)
	ctx := context.Background()

	byLast, err := repo.FindByLastName(ctx, "Banner")
	require.NoError(t, err)
	require.Len(t, byLast, 1)
	assert.Equal(t, "Bruce", byLast[0].FirstName)

	byFirst, err := repo.FindByFirstName(ctx, "Tony")
	require.NoError(t, err)
	require.Len(t, byFirst, 1)
	assert.Equal(t, "Stark", byFirst[0].LastName)

	// Точное совпадение, с учетом регистра
	none, err := repo.FindByLastName(ctx, "banner")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFindByFirstNameAndLastNameMatchesBothFields(t *testing.T) {
	repo := newTestRepo(t)
	seedAvengers(t, repo)
	ctx := context.Background()

	both, err := repo.FindByFirstNameAndLastName(ctx, "Tony", "Stark")
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Tony", both[0].FirstName)
	assert.Equal(t, "Stark", both[0].LastName)

	// Совпадение по одному полю недостаточно
	mixed, err := repo.FindByFirstNameAndLastName(ctx, "Tony", "Banner")
	require.NoError(t, err)
	assert.Empty(t, mixed)
}

func TestDeleteByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	customer := domain.NewCustomer("Nick", "Fury")
	_, err := repo.Save(ctx, customer)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByID(ctx, customer.ID))

	_, err = repo.FindByID(ctx, customer.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.DeleteByID(ctx, customer.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindAllIteratesInInsertionOrderAndTerminates(t *testing.T) {
	repo := newTestRepo(t)
	seed := seedAvengers(t, repo)
	ctx := context.Background()

	iter, err := repo.FindAll(ctx)
	require.NoError(t, err)

	var drained []domain.Customer
	var c domain.Customer
	for iter.Next(&c) {
		drained = append(drained, c)
	}
	require.NoError(t, iter.Close())

	require.Len(t, drained, len(seed))
	assert.Equal(t, seed, drained)

	// После исчерпания итератор остается исчерпанным
	assert.False(t, iter.Next(&c))
}

func TestFindAllIteratorStopsOnCanceledContext(t *testing.T) {
	repo := newTestRepo(t)
	seedAvengers(t, repo)

	ctx, cancel := context.WithCancel(context.Background())
	iter, err := repo.FindAll(ctx)
	require.NoError(t, err)

	var c domain.Customer
	require.True(t, iter.Next(&c))

	cancel()
	assert.False(t, iter.Next(&c))
	require.NoError(t, iter.Close())
}

func TestFindAllSnapshotIsolation(t *testing.T) {
	repo := newTestRepo(t)
	seedAvengers(t, repo)
	ctx := context.Background()

	iter, err := repo.FindAll(ctx)
	require.NoError(t, err)

	// Запись, добавленная после старта обхода, в снимок не попадает
	_, err = repo.Save(ctx, domain.NewCustomer("Steve", "Rogers"))
	require.NoError(t, err)

	var count int
	var c domain.Customer
	for iter.Next(&c) {
		count++
	}
	require.NoError(t, iter.Close())
	assert.Equal(t, 4, count)
}

func TestCount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	seedAvengers(t, repo)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
