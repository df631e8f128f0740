package infrastructure

import (
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func GenerateUUID() string {
	return uuid.New().String()
}

// MarshalPayload serializa payloads de eventos e mensagens.
func MarshalPayload[T any](payload T) ([]byte, error) {
	return json.Marshal(payload)
}

func UnmarshalPayload[T any](data []byte) (T, error) {
	var payload T
	err := json.Unmarshal(data, &payload)
	return payload, err
}
