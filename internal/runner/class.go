package runner

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Reserved hook method names. They are never discovered as tests.
const (
	HookBefore = "Before"
	HookAfter  = "After"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Class describes a test class: a name, a factory producing fresh instances,
// and a side table of ignored method names.
type Class struct {
	name    string
	typ     reflect.Type
	factory func() (reflect.Value, error)
	ignored map[string]bool

	once    sync.Once
	methods []string
	tests   map[string]method
	before  *method
	after   *method
}

// method is a discovered method of the class's pointer type.
type method struct {
	index int
}

// Define describes the test class T. The factory builds one instance per
// test method; a nil factory uses new(T). Test and hook methods are looked
// up on *T.
func Define[T any](name string, factory func() (*T, error)) *Class {
	c := &Class{
		name:    name,
		typ:     reflect.TypeOf((**T)(nil)).Elem(),
		ignored: make(map[string]bool),
	}
	c.factory = func() (reflect.Value, error) {
		if factory == nil {
			return reflect.ValueOf(new(T)), nil
		}
		inst, err := factory()
		if err != nil {
			return reflect.Value{}, err
		}
		if inst == nil {
			return reflect.Value{}, fmt.Errorf("factory for %s returned a nil instance", name)
		}
		return reflect.ValueOf(inst), nil
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// Ignore marks methods as ignored. Ignored methods are still discovered and
// reported, but never executed.
func (c *Class) Ignore(names ...string) *Class {
	for _, n := range names {
		c.ignored[n] = true
	}
	return c
}

// IsIgnored reports whether the method carries the ignored marker.
func (c *Class) IsIgnored(name string) bool {
	return c.ignored[name]
}

// Methods returns the discoverable test method names in lexicographic order.
func (c *Class) Methods() []string {
	c.discover()
	return slices.Clone(c.methods)
}

// HasMethod reports whether name is a discoverable test method.
func (c *Class) HasMethod(name string) bool {
	c.discover()
	_, ok := c.tests[name]
	return ok
}

// discover resolves test methods and hooks from the method table of *T.
func (c *Class) discover() {
	c.once.Do(func() {
		c.tests = make(map[string]method)
		for i := 0; i < c.typ.NumMethod(); i++ {
			m := c.typ.Method(i)
			if !testShape(m.Type) {
				continue
			}
			found := method{index: i}

			switch m.Name {
			case HookBefore:
				c.before = &found
			case HookAfter:
				c.after = &found
			default:
				c.tests[m.Name] = found
				c.methods = append(c.methods, m.Name)
			}
		}
		slices.Sort(c.methods)
	})
}

// testShape accepts func(recv) and func(recv) error.
func testShape(t reflect.Type) bool {
	if t.NumIn() != 1 {
		return false
	}
	switch t.NumOut() {
	case 0:
		return true
	case 1:
		return t.Out(0) == errorType
	}
	return false
}

// bind returns the method of inst as a func() or func() error.
func bind(inst reflect.Value, m method) any {
	return inst.Method(m.index).Interface()
}
