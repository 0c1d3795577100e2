package listmod

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/dop251/goja"

	"linkedlist/struct/list"
)

const ModuleName = "list"

type module struct {
	runtime *goja.Runtime
}

// jsList is the script-side handle of a LinkedList holding JS values.
type jsList struct {
	*module
	l    *list.LinkedList[goja.Value]
	busy bool // a script comparator is running against l
}

func Require(runtime *goja.Runtime, mod *goja.Object) {
	m := &module{runtime: runtime}
	obj := mod.Get("exports").(*goja.Object)
	_ = obj.Set("create", m.jsCreate)
	_ = obj.Set("compare", m.jsCompare)
}

// jsCreate
// @Description: create an empty list.
//
// [options]:
//
//	{
//		maxNodes:number
//	}
func (m *module) jsCreate(call goja.FunctionCall) goja.Value {
	var opts []list.Option
	if opt := call.Argument(0); argCheck(opt) {
		if maxNodes := opt.ToObject(m.runtime).Get("maxNodes"); argCheck(maxNodes) {
			opts = append(opts, list.WithMaxNodes(int(maxNodes.ToInteger())))
		}
	}
	jl := &jsList{module: m, l: list.New[goja.Value](opts...)}

	obj := m.runtime.NewObject()
	_ = obj.Set("pushFront", jl.jsPushFront)
	_ = obj.Set("pushBack", jl.jsPushBack)
	_ = obj.Set("insertAt", jl.jsInsertAt)
	_ = obj.Set("removeValue", jl.jsRemoveValue)
	_ = obj.Set("removeAt", jl.jsRemoveAt)
	_ = obj.Set("find", jl.jsFind)
	_ = obj.Set("getAt", jl.jsGetAt)
	_ = obj.Set("length", jl.jsLength)
	_ = obj.Set("clear", jl.jsClear)
	_ = obj.Set("toArray", jl.jsToArray)
	_ = obj.Set("toString", jl.jsToString)
	return obj
}

func (m *module) jsCompare(call goja.FunctionCall) goja.Value {
	return m.runtime.ToValue(compareValues(call.Argument(0), call.Argument(1)))
}

func (jl *jsList) jsPushFront(call goja.FunctionCall) goja.Value {
	jl.guard()
	if err := jl.l.PushFront(call.Argument(0)); err != nil {
		jl.throw(err)
	}
	return jl.runtime.ToValue(jl.l.Len())
}

func (jl *jsList) jsPushBack(call goja.FunctionCall) goja.Value {
	jl.guard()
	if err := jl.l.PushBack(call.Argument(0)); err != nil {
		jl.throw(err)
	}
	return jl.runtime.ToValue(jl.l.Len())
}

func (jl *jsList) jsInsertAt(call goja.FunctionCall) goja.Value {
	jl.guard()
	inserted, err := jl.l.InsertAt(call.Argument(0), jl.index(call.Argument(1)))
	if err != nil {
		jl.throw(err)
	}
	return jl.runtime.ToValue(inserted)
}

func (jl *jsList) jsRemoveValue(call goja.FunctionCall) goja.Value {
	jl.guard()
	removed, err := jl.l.RemoveValue(call.Argument(0), jl.comparator(call.Argument(1)))
	if err != nil {
		jl.throw(err)
	}
	return jl.runtime.ToValue(removed)
}

func (jl *jsList) jsRemoveAt(call goja.FunctionCall) goja.Value {
	jl.guard()
	removed, err := jl.l.RemoveAt(jl.index(call.Argument(0)))
	if err != nil {
		jl.throw(err)
	}
	return jl.runtime.ToValue(removed)
}

// jsFind returns the index of the first match, or -1.
func (jl *jsList) jsFind(call goja.FunctionCall) goja.Value {
	jl.guard()
	idx, err := jl.l.Find(call.Argument(0), jl.comparator(call.Argument(1)))
	if errors.Is(err, list.ErrNotFound) {
		return jl.runtime.ToValue(-1)
	}
	if err != nil {
		jl.throw(err)
	}
	return jl.runtime.ToValue(idx)
}

// jsGetAt returns undefined past the end of the list.
func (jl *jsList) jsGetAt(call goja.FunctionCall) goja.Value {
	jl.guard()
	val, err := jl.l.GetAt(jl.index(call.Argument(0)))
	if errors.Is(err, list.ErrNotFound) {
		return goja.Undefined()
	}
	if err != nil {
		jl.throw(err)
	}
	return val
}

func (jl *jsList) jsLength(goja.FunctionCall) goja.Value {
	jl.guard()
	return jl.runtime.ToValue(jl.l.Len())
}

func (jl *jsList) jsClear(goja.FunctionCall) goja.Value {
	jl.guard()
	jl.l.Clear()
	return goja.Undefined()
}

func (jl *jsList) jsToArray(goja.FunctionCall) goja.Value {
	jl.guard()
	values := jl.l.Values()
	items := make([]interface{}, len(values))
	for i, v := range values {
		items[i] = v
	}
	return jl.runtime.NewArray(items...)
}

func (jl *jsList) jsToString(goja.FunctionCall) goja.Value {
	jl.guard()
	return jl.runtime.ToValue(jl.l.String())
}

/***************Some Value Convert************************/

func argCheck(value goja.Value) bool {
	return value != nil && !goja.IsUndefined(value) && !goja.IsNull(value)
}

// index rejects non-numeric indexes up front; the list itself rejects negative ones.
func (m *module) index(v goja.Value) int {
	if !isNumber(v) {
		panic(m.runtime.NewTypeError("index must be a number"))
	}
	return int(v.ToInteger())
}

// guard rejects calls made from inside a comparator running against the same
// list; the scan in progress would otherwise continue over relinked nodes.
func (jl *jsList) guard() {
	if jl.busy {
		panic(jl.runtime.NewTypeError("list is in use by a running comparator"))
	}
}

// comparator adapts a JS function to a list.Comparator. An omitted argument
// selects compareValues. A NaN result never means equal.
func (jl *jsList) comparator(v goja.Value) list.Comparator[goja.Value] {
	if v == nil || goja.IsUndefined(v) {
		return compareValues
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		panic(jl.runtime.NewTypeError("comparator must be a function"))
	}
	return func(a, b goja.Value) int {
		jl.busy = true
		defer func() {
			jl.busy = false
		}()
		res, err := fn(goja.Undefined(), a, b)
		if err != nil {
			jl.rethrow(err)
		}
		f := res.ToFloat()
		if math.IsNaN(f) {
			return 1
		}
		return sign(f)
	}
}

func (m *module) throw(err error) {
	if errors.Is(err, list.ErrInvalidArgument) {
		panic(m.runtime.NewTypeError(err.Error()))
	}
	panic(m.runtime.NewGoError(err))
}

func (m *module) rethrow(err error) {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		panic(ex)
	}
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		// keep the interrupt uncatchable for the outer script
		m.runtime.Interrupt(interrupted.Value())
	}
	panic(m.runtime.NewGoError(err))
}

func isNumber(v goja.Value) bool {
	if v == nil {
		return false
	}
	t := v.ExportType()
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Int64, reflect.Float64:
		return true
	}
	return false
}

// compareValues orders two numbers numerically and anything else by its
// string form. NaN sorts after every other number and only equals NaN.
func compareValues(a, b goja.Value) int {
	if isNumber(a) && isNumber(b) {
		fa, fb := a.ToFloat(), b.ToFloat()
		switch aNaN, bNaN := math.IsNaN(fa), math.IsNaN(fb); {
		case aNaN && bNaN:
			return 0
		case aNaN:
			return 1
		case bNaN:
			return -1
		}
		return sign(fa - fb)
	}
	return strings.Compare(a.String(), b.String())
}

func sign(f float64) int {
	switch {
	case f < 0:
		return -1
	case f > 0:
		return 1
	}
	return 0
}

/******************End***********************************/
