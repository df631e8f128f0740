package domain

import "fmt"

// Address é o endereço de entrega do cliente.
type Address struct {
	Street string `json:"street"`
	Number int    `json:"number"`
	Zip    string `json:"zip"`
	City   string `json:"city"`
}

func (a Address) String() string {
	return fmt.Sprintf("%s, %d, %s %s", a.Street, a.Number, a.Zip, a.City)
}

type Customer struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address Address `json:"address"`
}
