package lox

// Class is an immutable record of a class declaration: its name and an
// unbound method table. Grounded on the teacher's class.go; unlike the
// teacher (and original_source, see DESIGN.md), `init` is treated as a
// normal method and found by FindMethod like any other — SPEC_FULL.md's
// Resolved Open Question #2.
type Class struct {
	Name    string
	Methods map[string]*Function
}

func NewClass(name string, methods map[string]*Function) *Class {
	return &Class{Name: name, Methods: methods}
}

// FindMethod looks up name in this class's method table.
func (c *Class) FindMethod(name string) (*Function, bool) {
	m, ok := c.Methods[name]
	return m, ok
}

// Arity is the initializer's arity if the class defines "init", else 0.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance, invoking "init" bound to it if the
// class defines one.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string { return c.Name }
