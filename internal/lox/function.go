package lox

// Function is a user-defined function or method value: the AST of its
// declaration paired with the environment captured at definition time.
// Grounded on the teacher's function.go Function type; recursion works
// because the enclosing statement (FunctionStmt execution, or
// ClassStmt's method table) defines the function's own name in that
// captured environment before any call happens, not inside Call itself.
type Function struct {
	decl          *FunctionStmt
	closure       *Environment
	isInitializer bool
}

func NewFunction(decl *FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{decl: decl, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.decl.Params) }

func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.decl.Body, env)
	if ret, ok := err.(returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

func (f *Function) String() string {
	return "<fn " + f.decl.Name.Lexeme + ">"
}

// Bind returns a copy of the function whose closure is a fresh
// environment — enclosing the method's original closure — with "this"
// bound to instance. This is how an unbound method becomes a bound one
// at Get-time (spec.md §4.5 "Method binding").
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.decl, env, f.isInitializer)
}
