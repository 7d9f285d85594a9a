package resource

import (
	"fmt"

	"github.com/Dhoini/Customer-microservice/internal/domain"
	"github.com/google/uuid"
)

// Link гиперссылка на связанный ресурс
type Link struct {
	Href string `json:"href"`
}

// Links именованная карта гиперссылок (_links в HAL)
type Links map[string]Link

// CustomerResource представление одного клиента с гиперссылками
type CustomerResource struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Links     Links     `json:"_links"`
}

// CustomerCollection представление коллекции клиентов
type CustomerCollection struct {
	Embedded EmbeddedCustomers `json:"_embedded"`
	Links    Links             `json:"_links"`
}

// EmbeddedCustomers вложенный список элементов коллекции
type EmbeddedCustomers struct {
	Customers []CustomerResource `json:"customers"`
}

// RootResource корневой ресурс API: только ссылки
type RootResource struct {
	Links Links `json:"_links"`
}

// Assembler собирает представления из сущностей. Чистое преобразование:
// входные данные не мутируются, представления пересобираются на каждый ответ.
// За интерфейсом можно подменить формат (например, плоский JSON без ссылок),
// не трогая обработчики.
type Assembler interface {
	ToResource(customer domain.Customer) CustomerResource
	ToCollection(customers []domain.Customer) CustomerCollection
	ToRoot() RootResource
}

// Пути эндпоинтов, на которые ссылаются представления
const (
	rootPath      = "/"
	customersPath = "/customers"
	streamPath    = "/stream/customers"
)

// halAssembler единственная реализация Assembler (HAL-подобный формат)
type halAssembler struct{}

// NewAssembler создает новый сборщик представлений
func NewAssembler() Assembler {
	return &halAssembler{}
}

// ToResource оборачивает клиента ссылкой self на его by-id эндпоинт
// и кросс-ссылкой на поток всех клиентов
func (a *halAssembler) ToResource(customer domain.Customer) CustomerResource {
	return CustomerResource{
		ID:        customer.ID,
		FirstName: customer.FirstName,
		LastName:  customer.LastName,
		Links: Links{
			"self":      {Href: fmt.Sprintf("%s/%s", customersPath, customer.ID)},
			"customers": {Href: streamPath},
		},
	}
}

// ToCollection прогоняет каждый элемент через ToResource, сохраняя порядок,
// и добавляет ссылку self уровня коллекции. Пустой вход дает пустую,
// но корректно сформированную коллекцию.
func (a *halAssembler) ToCollection(customers []domain.Customer) CustomerCollection {
	resources := make([]CustomerResource, 0, len(customers))
	for _, c := range customers {
		resources = append(resources, a.ToResource(c))
	}

	return CustomerCollection{
		Embedded: EmbeddedCustomers{Customers: resources},
		Links: Links{
			"self": {Href: customersPath},
		},
	}
}

// ToRoot собирает корневой ресурс со ссылками на остальные эндпоинты
func (a *halAssembler) ToRoot() RootResource {
	return RootResource{
		Links: Links{
			"self":             {Href: rootPath},
			"customers":        {Href: customersPath},
			"stream/customers": {Href: streamPath},
		},
	}
}

// SelfHref возвращает канонический путь ресурса клиента.
// Используется обработчиками для заголовка Location.
func SelfHref(id uuid.UUID) string {
	return fmt.Sprintf("%s/%s", customersPath, id)
}
