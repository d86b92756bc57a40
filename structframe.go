package dbus

import (
	"fmt"
	"reflect"
)

// StructCallFrame adapts a plain Go struct to the CallFrame contract:
// each exported field becomes one positional argument slot, in
// declaration order, with its declared host class taken from a
// `dbus:"class"` struct tag. The return slot (-1) is held separately,
// since a call's return value has no natural field of its own to live
// in.
//
// Grounded on the teacher's structs.go/reflect.go struct field walk,
// stripped of its vardict support: the type algebra this repository
// implements has no vardict extension to bind one.
type StructCallFrame struct {
	v           reflect.Value
	fields      []reflect.StructField
	classes     []HostClass
	resultClass HostClass
	result      any
}

// NewStructCallFrame returns a StructCallFrame over structPtr, a
// pointer to a struct whose exported fields are the call's positional
// arguments in declaration order. resultClass declares the return
// slot's host type.
func NewStructCallFrame(structPtr any, resultClass HostClass) (*StructCallFrame, error) {
	rv := reflect.ValueOf(structPtr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("dbus: NewStructCallFrame requires a non-nil pointer to a struct, got %T", structPtr)
	}
	elem := rv.Elem()
	t := elem.Type()
	f := &StructCallFrame{v: elem, resultClass: resultClass}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		f.fields = append(f.fields, sf)
		f.classes = append(f.classes, parseHostClassTag(sf.Tag.Get("dbus")))
	}
	return f, nil
}

func (f *StructCallFrame) SlotHostClass(index int) HostClass {
	if index == -1 {
		return f.resultClass
	}
	if index < 0 || index >= len(f.classes) {
		return HostClassNone
	}
	return f.classes[index]
}

func (f *StructCallFrame) Get(index int) any {
	if index == -1 {
		return f.result
	}
	return f.v.FieldByIndex(f.fields[index].Index).Interface()
}

func (f *StructCallFrame) Set(index int, v any) {
	if index == -1 {
		f.result = v
		return
	}
	f.v.FieldByIndex(f.fields[index].Index).Set(reflect.ValueOf(v))
}

// Result returns the value most recently stored in the return slot.
func (f *StructCallFrame) Result() any { return f.result }

func parseHostClassTag(tag string) HostClass {
	switch tag {
	case "integer":
		return HostClassInteger
	case "boolean":
		return HostClassBoolean
	case "float":
		return HostClassFloat
	case "string":
		return HostClassString
	case "object-path":
		return HostClassObjectPath
	case "signature":
		return HostClassSignature
	case "sequence":
		return HostClassSequence
	case "mapping":
		return HostClassMapping
	case "variant":
		return HostClassVariant
	default:
		return HostClassNone
	}
}
