package util

import (
	"fmt"

	"github.com/avlink/mavdialect/log"
)

// PanicIf panics with err if err is non-nil. cmd/mavdialectc uses it for
// every failure, including a bad manifest or dialect file; its deferred
// Catch logs the panic and exits with status 1.
func PanicIf(err error) {
	if err != nil {
		panic(err)
	}
}

func Panicf(format string, a ...any) {
	panic(fmt.Sprintf(format, a...))
}

// NormalRecover logs and swallows a panic. RecoverableFunction and SafeCall
// defer it around the function they run.
func NormalRecover() {
	if r := recover(); r != nil {
		log.Error(r)
	}
}

func Catch(handler func(reason any)) {
	if r := recover(); r != nil {
		log.Error(r)
		handler(r)
	}
}

func RecoverableFunction(fn func()) func() {
	return func() {
		defer NormalRecover()
		fn()
	}
}

func SafeCall(fn func()) {
	defer NormalRecover()
	fn()
}
