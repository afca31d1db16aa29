package utils

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// UnmarshalJson converts a loosely decoded payload (usually a map) into T.
func UnmarshalJson[T any](v any) (T, error) {
	data, err := jsoniter.Marshal(v)
	if err != nil {
		return *new(T), errors.WithMessage(err, "marshal json")
	}
	var result T
	if err := jsoniter.Unmarshal(data, &result); err != nil {
		return *new(T), errors.WithMessage(err, "unmarshal json")
	}
	return result, nil
}

func DecodeJson[T any](r io.Reader) (T, error) {
	var result T
	if err := jsoniter.NewDecoder(r).Decode(&result); err != nil {
		return *new(T), errors.WithMessage(err, "decode json")
	}
	return result, nil
}
