package mapper_test

import (
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"object-mapper/mapper"
	"object-mapper/options"
)

type Status int

const (
	StatusPending Status = iota
	StatusShipped
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusShipped:
		return "Shipped"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Status(?)"
	}
}

// StatusDTO orders its cases differently from Status.
type StatusDTO int

const (
	StatusDTOCancelled StatusDTO = iota + 1
	StatusDTOShipped
	StatusDTOPending
)

func (s StatusDTO) String() string {
	switch s {
	case StatusDTOCancelled:
		return "Cancelled"
	case StatusDTOShipped:
		return "Shipped"
	case StatusDTOPending:
		return "Pending"
	default:
		return "StatusDTO(?)"
	}
}

type Address struct {
	Street string
	City   string
}

type Customer struct {
	Name    string
	Email   string
	Address Address
}

type Line struct {
	Product  string
	Quantity int
	Price    float64
}

type Order struct {
	ID       string
	Customer *Customer
	Lines    []Line
	Status   Status
	Note     *string
}

type LineDTO struct {
	Product  string
	Quantity int
	Price    string
}

type OrderDTO struct {
	ID                  uuid.UUID
	CustomerName        string
	CustomerAddressCity string
	Lines               []LineDTO
	Status              StatusDTO
	Note                string
}

func quietOptions(opts ...options.Option) []options.Option {
	return append([]options.Option{options.WithLogger(quietLogger())}, opts...)
}

// orderConfiguration registers the order graph the way an application would at startup.
func orderConfiguration(opts ...options.Option) *mapper.Configuration {
	config := mapper.NewConfiguration(quietOptions(opts...)...)

	if err := mapper.RegisterEnum(config, StatusPending, StatusShipped, StatusCancelled); err != nil {
		panic(err)
	}

	if err := mapper.RegisterEnum(config, StatusDTOCancelled, StatusDTOShipped, StatusDTOPending); err != nil {
		panic(err)
	}

	mapper.CreateMap[Line, LineDTO](config)
	mapper.CreateMap[Order, OrderDTO](config)

	return config
}

func sampleOrder() Order {
	note := "leave at the door"

	return Order{
		ID: "6f1c1f4e-8d8e-4f5b-9a55-0b9f3c2f7a10",
		Customer: &Customer{
			Name:    "Ada",
			Email:   "ada@example.com",
			Address: Address{Street: "1 Loop Rd", City: "London"},
		},
		Lines: []Line{
			{Product: "keyboard", Quantity: 1, Price: 49.5},
			{Product: "cable", Quantity: 3, Price: 4},
		},
		Status: StatusShipped,
		Note:   &note,
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
