package js_exec

import (
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/dop251/goja"
	"github.com/pkg/errors"

	"linkedlist/js_exec/debug_out"
	"linkedlist/logger"
	"linkedlist/util/wait"
)

// ErrTimeout is returned by Run when the script outlives its timeout.
var ErrTimeout = errors.New("script timed out")

// Run executes script in a fresh VM, sending console output to writer. The VM
// is interrupted once timeout elapses; a non-positive timeout never interrupts.
func Run(script string, writer io.Writer, timeout time.Duration) error {
	vm := goja.New() // the vm is not concurrent safe.
	LoadModules(vm)
	debug_out.SetIoWriter(vm, writer)

	var wt wait.Wait
	var err error
	wt.Add(1)
	go func() {
		defer wt.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Warn(fmt.Sprintf("script panicked: %v\n%s", r, string(debug.Stack())))
				err = errors.Errorf("script panicked: %v", r)
			}
		}()
		_, err = vm.RunString(script)
	}()

	if wt.WaitTimeOut(timeout) {
		vm.Interrupt(ErrTimeout)
		if wt.WaitTimeOut(timeout) {
			logger.Error("script ignored interrupt, abandoning vm")
		}
		return ErrTimeout
	}
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return ErrTimeout
		}
		return errors.Wrap(err, "run script")
	}
	return nil
}
