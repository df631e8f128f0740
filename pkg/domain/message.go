package domain

// Command representa uma intenção de alterar o estado de um agregado.
type Command[T any] interface {
	CommandName() string
	Payload() T
}

// Query representa uma leitura sem efeitos colaterais.
type Query[T any] interface {
	QueryName() string
	Payload() T
}
