package slab

import (
	"reflect"
	"unsafe"
)

// Destroyer may be implemented by objects built with [Construct].
// Destroy is called once, by [Allocator.Destroy], before the slot is released.
type Destroyer interface {
	Destroy()
}

// Construct reserves a slot sized for T and initializes a new T in it.
// The object is bound to the slot until [Allocator.Destroy] is called
// with the returned address.
// If init panics, the slot is released before the panic continues.
//
// A T without pointers is placed in the slot's bytes
// when the slot is aligned for it.
// Any other T is allocated separately and tracked by its slot,
// so the garbage collector still sees the pointers it holds.
func Construct[T any](a *Allocator, init func(*T)) (Addr, *T, error) {
	var zero T
	addr, err := a.Allocate(int(unsafe.Sizeof(zero)))
	if err != nil {
		return 0, nil, err
	}
	constructed := false
	defer func() {
		if !constructed {
			a.Deallocate(addr)
		}
	}()
	object := place[T](a, addr)
	if init != nil {
		init(object)
	}
	slab, index, _ := a.slot(addr)
	slab.objects[index] = object
	constructed = true
	return addr, object, nil
}

// place returns zeroed storage for a T bound to the slot at addr.
func place[T any](a *Allocator, addr Addr) *T {
	var (
		zero    T
		storage = a.Bytes(addr)
	)
	if !pointerFree(reflect.TypeFor[T]()) ||
		uintptr(unsafe.Pointer(unsafe.SliceData(storage)))%unsafe.Alignof(zero) != 0 {
		return new(T)
	}
	object := (*T)(unsafe.Pointer(unsafe.SliceData(storage)))
	*object = zero
	return object
}

func pointerFree(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return typ.Len() == 0 || pointerFree(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if !pointerFree(typ.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Object returns the object constructed at addr, if any.
func (a *Allocator) Object(addr Addr) (any, bool) {
	slab, index, ok := a.slot(addr)
	if !ok || slab.objects[index] == nil {
		return nil, false
	}
	return slab.objects[index], true
}

// Destroy finalizes the object constructed at addr
// (see [Destroyer]) and deallocates its slot.
// Like [Allocator.Deallocate], addresses outside of the arena are ignored.
func (a *Allocator) Destroy(addr Addr) {
	slab, index, ok := a.slot(addr)
	if !ok {
		return
	}
	if destroyer, ok := slab.objects[index].(Destroyer); ok {
		destroyer.Destroy()
	}
	a.Deallocate(addr)
}
