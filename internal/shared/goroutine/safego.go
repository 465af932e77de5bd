// Package goroutine launches background goroutines with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine. A panic in fn is logged with its stack
// under the given name instead of taking the process down. Worker fan-out,
// such as the per-machine OEE computation, runs through this.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// Recover is the deferred half of SafeGo, usable directly in goroutines that
// need their own defer ordering.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
