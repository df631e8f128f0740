package domain

// IDGenerator produz identificadores para agregados.
type IDGenerator[T any] func() T
