package utils

import (
	"context"
	"io"
	"reflect"

	"github.com/stellar/go-stellar-sdk/support/log"
)

// PointOf returns a pointer to the value
func PointOf[T any](value T) *T {
	return &value
}

// IsEmpty checks if a value is empty.
func IsEmpty[T any](v T) bool {
	return reflect.ValueOf(&v).Elem().IsZero()
}

// UnwrapInterfaceToPointer unwraps an interface to a pointer of the given type.
func UnwrapInterfaceToPointer[T any](i interface{}) *T {
	t, ok := i.(*T)
	if ok {
		return t
	}
	return nil
}

// DeferredClose closes the given closer and logs the error, if any. Meant to be
// used in defer statements where the close error cannot be returned.
func DeferredClose(ctx context.Context, closer io.Closer, errMsg string) {
	if err := closer.Close(); err != nil {
		if errMsg == "" {
			errMsg = "closing resource"
		}
		log.Ctx(ctx).Errorf("%s: %v", errMsg, err)
	}
}
