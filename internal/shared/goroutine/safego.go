// Package goroutine launches background work that must not take the process down.
package goroutine

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/rollerweb/roller/internal/shared/logger"
)

// SafeGoGroup runs fn in a goroutine tracked by wg. A panic is logged with its
// stack instead of crashing, and Done is called either way.
func SafeGoGroup(wg *sync.WaitGroup, log logger.Interface, name string, fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		guarded(log, name, fn)
	}()
}

func guarded(log logger.Interface, name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
}
