package common

import (
	"fmt"
	"runtime/debug"
)

// Try runs f and turns a panic raised inside it into an error.
func Try[T any](f func() T) (result T, err error) {
	result, err, _ = TryStack(f)
	return result, err
}

// TryStack is Try that also reports the stack of the recovered panic.
func TryStack[T any](f func() T) (result T, err error, stack string) {
	defer func() {
		if r := recover(); r != nil {
			switch r := r.(type) {
			case error:
				err = r
			default:
				err = fmt.Errorf("%v", r)
			}
			stack = string(debug.Stack())
		}
	}()
	return f(), nil, ""
}
