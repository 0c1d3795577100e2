package debug_out

import (
	"io"
	"os"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/require"
	"github.com/dop251/goja_nodejs/util"
)

const ModuleName = "debug_console"

// Console is a console module that writes every line to an io.Writer
// instead of the process log.
type Console struct {
	runtime *goja.Runtime
	util    *goja.Object
	writer  io.Writer
}

var defaultWriter io.Writer = os.Stdout

func (c *Console) log(call goja.FunctionCall) goja.Value {
	if format, ok := goja.AssertFunction(c.util.Get("format")); ok {
		ret, err := format(c.util, call.Arguments...)
		if err != nil {
			panic(err)
		}
		_, _ = io.WriteString(c.writer, ret.String()+"\n")
	} else {
		panic(c.runtime.NewTypeError("util.format is not a function"))
	}
	return nil
}

func (c *Console) export(o *goja.Object) {
	_ = o.Set("log", c.log)
	_ = o.Set("error", c.log)
	_ = o.Set("warn", c.log)
	_ = o.Set("info", c.log)
}

func Require(runtime *goja.Runtime, module *goja.Object) {
	requireWithPrinter(defaultWriter)(runtime, module)
}

func requireWithPrinter(writer io.Writer) require.ModuleLoader {
	return func(runtime *goja.Runtime, module *goja.Object) {
		c := &Console{
			runtime: runtime,
			writer:  writer,
		}
		c.util = require.Require(runtime, util.ModuleName).(*goja.Object)
		c.export(module.Get("exports").(*goja.Object))
	}
}

// Enable installs the module as the global console. The registry must
// already be enabled on runtime.
func Enable(runtime *goja.Runtime) {
	runtime.Set("console", require.Require(runtime, ModuleName))
}

// SetIoWriter points the global console of runtime at writer.
func SetIoWriter(runtime *goja.Runtime, writer io.Writer) {
	var s = runtime.Get("console").(*goja.Object)
	var c = &Console{
		runtime: runtime,
		util:    require.Require(runtime, util.ModuleName).(*goja.Object),
		writer:  writer,
	}
	c.export(s)
}
