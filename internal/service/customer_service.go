package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dhoini/Customer-microservice/internal/domain"
	"github.com/Dhoini/Customer-microservice/internal/events"
	"github.com/Dhoini/Customer-microservice/internal/metrics"
	"github.com/Dhoini/Customer-microservice/internal/repository"
	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/google/uuid"
)

// CustomerService определяет бизнес-операции над клиентами
type CustomerService interface {
	Create(ctx context.Context, req domain.CustomerRequest) (domain.Customer, error)
	Update(ctx context.Context, id uuid.UUID, req domain.CustomerRequest) (domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	Search(ctx context.Context, firstName, lastName string) ([]domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	StreamAll(ctx context.Context) (repository.CustomerIterator, error)
	Count(ctx context.Context) (int64, error)
}

// customerService реализация CustomerService
type customerService struct {
	repo     repository.CustomerRepository
	producer events.Producer
	metrics  metrics.CustomerMetrics
	log      *logger.Logger
}

// NewCustomerService создает новый сервис клиентов
func NewCustomerService(repo repository.CustomerRepository, producer events.Producer, m metrics.CustomerMetrics, log *logger.Logger) CustomerService {
	return &customerService{
		repo:     repo,
		producer: producer,
		metrics:  m,
		log:      log,
	}
}

// Create создает нового клиента. Любой присланный id игнорируется:
// идентификатор всегда назначается заново.
func (s *customerService) Create(ctx context.Context, req domain.CustomerRequest) (domain.Customer, error) {
	customer := domain.NewCustomer(req.FirstName, req.LastName)

	saved, err := s.repo.Save(ctx, customer)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	s.metrics.IncCustomerCreated()
	s.publish(ctx, events.TopicCustomerCreated, saved)
	return saved, nil
}

// Update полностью заменяет запись: читает существующую по id,
// собирает копию с тем же id и новыми именами, пишет обратно.
func (s *customerService) Update(ctx context.Context, id uuid.UUID, req domain.CustomerRequest) (domain.Customer, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}

	replacement := domain.CustomerWithID(existing.ID, req.FirstName, req.LastName)
	saved, err := s.repo.Save(ctx, replacement)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("update customer: %w", err)
	}

	s.metrics.IncCustomerUpdated()
	s.publish(ctx, events.TopicCustomerUpdated, saved)
	return saved, nil
}

// GetByID возвращает клиента по id
func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// Search выбирает операцию репозитория по приоритету параметров:
//  1. только фамилия      -> FindByLastName
//  2. только имя          -> FindByFirstName
//  3. оба параметра       -> FindByFirstNameAndLastName (один комбинированный запрос)
//  4. ни одного параметра -> ErrNotFound без обращения к хранилищу
//
// Параметр считается заданным, если после обрезки пробелов он не пуст.
// Пустой результат тоже отдается как ErrNotFound.
func (s *customerService) Search(ctx context.Context, firstName, lastName string) ([]domain.Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	var (
		found []domain.Customer
		err   error
	)
	switch {
	case lastName != "" && firstName == "":
		s.metrics.IncSearch("last_name")
		found, err = s.repo.FindByLastName(ctx, lastName)
	case firstName != "" && lastName == "":
		s.metrics.IncSearch("first_name")
		found, err = s.repo.FindByFirstName(ctx, firstName)
	case firstName != "" && lastName != "":
		s.metrics.IncSearch("both")
		found, err = s.repo.FindByFirstNameAndLastName(ctx, firstName, lastName)
	default:
		s.metrics.IncSearch("none")
		return nil, domain.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	if len(found) == 0 {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

// Delete удаляет клиента. Сначала читаем запись, чтобы отличить
// "не найдено" от успешного удаления.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, existing.ID); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	s.metrics.IncCustomerDeleted()
	s.publish(ctx, events.TopicCustomerDeleted, existing)
	return nil
}

// StreamAll возвращает итератор по всем клиентам для потоковой выдачи
func (s *customerService) StreamAll(ctx context.Context) (repository.CustomerIterator, error) {
	return s.repo.FindAll(ctx)
}

// Count возвращает общее количество клиентов
func (s *customerService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// publish отправляет событие жизненного цикла. Ошибка публикации
// логируется, но не валит запрос: события вторичны по отношению к записи.
func (s *customerService) publish(ctx context.Context, topic string, customer domain.Customer) {
	if err := s.producer.PublishCustomerEvent(ctx, topic, customer); err != nil {
		s.log.Errorw("Failed to publish customer event", "topic", topic, "customerID", customer.ID, "error", err)
	}
}
