package testutil

import "time"

type Customer struct {
	Id          int
	Name        string
	DateOfBirth time.Time
	Orders      []*Order
}

type Order struct {
	Id          int
	Description *string
	Date        time.Time
	Price       float64
	Status      int
	CustomerId  int
	Customer    *Customer
}

// Repository holds the sample customers and orders shared by the package tests.
// Orders reference their customer and customers list their orders.
type Repository struct {
	Customers []*Customer
	Orders    []*Order
}

func NewRepository() *Repository {
	customers := []*Customer{
		{Id: 1, Name: "Louis Green", DateOfBirth: Date(1975, 1, 1)},
		{Id: 2, Name: "Harry Wilkinson", DateOfBirth: Date(1980, 12, 1)},
		{Id: 3, Name: "Harvey Butler", DateOfBirth: Date(1976, 5, 14)},
		{Id: 4, Name: "Payton Banks", DateOfBirth: Date(1990, 12, 28)},
		{Id: 5, Name: "Brayan Navarro", DateOfBirth: Date(1955, 5, 6)},
	}

	orders := []*Order{
		{Id: 1, Date: Date(2015, 12, 12), Description: StringPtr("Lorem Ipsum"), Price: 10, Status: 1, CustomerId: 1},
		{Id: 2, Date: Date(2015, 12, 20), Description: StringPtr("Praesent est ipsum"), Price: 20, Status: 0, CustomerId: 1},
		{Id: 3, Date: Date(2014, 1, 20), Description: StringPtr("Donec cursus sagittis"), Price: 2, Status: 2, CustomerId: 2},
		{Id: 4, Date: Date(2016, 1, 2), Description: StringPtr("Fusce sollicitudin dolor"), Price: 15, Status: 2, CustomerId: 3},
		{Id: 5, Date: Date(2015, 5, 14), Description: StringPtr("Nam accumsan efficitur"), Price: 13, Status: 1, CustomerId: 3},
		{Id: 6, Date: Date(2015, 10, 2), Description: StringPtr("Sed fermentum eros magna"), Price: 11, Status: 1, CustomerId: 3},
		{Id: 7, Date: Date(2015, 11, 27), Description: StringPtr("Morbi auctor pulvinar"), Price: 5, Status: 0, CustomerId: 4},
		// order 8 is placed late in the day to exercise date-only comparisons
		{Id: 8, Date: time.Date(2015, 12, 20, 18, 45, 0, 0, time.UTC), Price: 45, Status: 0, CustomerId: 5},
	}

	for _, order := range orders {
		customer := customers[order.CustomerId-1]
		order.Customer = customer
		customer.Orders = append(customer.Orders, order)
	}

	return &Repository{Customers: customers, Orders: orders}
}

// OrderIds returns the ids of orders, preserving their order
func OrderIds(orders []*Order) []int {
	ids := make([]int, len(orders))
	for i, order := range orders {
		ids[i] = order.Id
	}
	return ids
}

// CustomerIds returns the ids of customers, preserving their order
func CustomerIds(customers []*Customer) []int {
	ids := make([]int, len(customers))
	for i, customer := range customers {
		ids[i] = customer.Id
	}
	return ids
}
