package js_exec

import (
	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"github.com/dop251/goja_nodejs/util"

	"linkedlist/js_exec/debug_out"
	"linkedlist/js_exec/listmod"
)

// RegistryModule makes a native module available to scripts through require.
func RegistryModule(moduleName string, loader require.ModuleLoader) {
	if moduleName == console.ModuleName || moduleName == debug_out.ModuleName {
		return
	}
	registry.RegisterNativeModule(moduleName, loader)
}

var registry = require.NewRegistry()

func init() {
	registry.RegisterNativeModule(util.ModuleName, util.Require)
	registry.RegisterNativeModule(debug_out.ModuleName, debug_out.Require)
	RegistryModule(listmod.ModuleName, listmod.Require)
}

// LoadModules enables require and the console on vm.
func LoadModules(vm *goja.Runtime) {
	registry.Enable(vm)
	debug_out.Enable(vm)
}
