package lox

import "fmt"

// Interpreter walks the resolved AST and produces side effects: it has
// no return value of its own beyond the top-level error it surfaces to
// the Session. Grounded on the teacher's interpreter.go for the
// env-swap-and-restore shape of execute/executeBlock, but call/get/
// set/this/return/class evaluation is newly grounded on
// original_source's Interpreter.java semantics — the teacher's own
// switches stop short of implementing those cases (see DESIGN.md).
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[Expr]int

	session *Session
}

func NewInterpreter(s *Session) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", &NativeFn{
		name:  "clock",
		arity: 0,
		fn: func(*Interpreter, []Value) (Value, error) {
			return nowSeconds(), nil
		},
	})

	return &Interpreter{
		globals: globals,
		env:     globals,
		locals:  make(map[Expr]int),
		session: s,
	}
}

// Resolve records that expr resolves distance environments up the
// chain from wherever it is evaluated. Called by the Resolver.
func (in *Interpreter) Resolve(expr Expr, distance int) {
	in.locals[expr] = distance
}

// Interpret runs a fully-resolved program, reporting any runtime
// error to the session and stopping at the first one (spec.md §4.5,
// §7).
func (in *Interpreter) Interpret(stmts []Stmt) {
	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			if rerr, ok := err.(*RuntimeError); ok {
				in.session.ReportRuntimeError(rerr)
			} else {
				in.session.ReportRuntimeError(newRuntimeError(Token{}, err.Error()))
			}
			return
		}
	}
}

func (in *Interpreter) execute(stmt Stmt) error {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		_, err := in.evaluate(s.Expression)
		return err

	case *PrintStmt:
		v, err := in.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.session.stdout(), stringify(v))
		return nil

	case *VarStmt:
		var value Value
		if s.Initializer != nil {
			v, err := in.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.env.Define(s.Name.Lexeme, value)
		return nil

	case *Block:
		return in.executeBlock(s.Statements, NewEnvironment(in.env))

	case *IfStmt:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.execute(s.ThenBranch)
		} else if s.ElseBranch != nil {
			return in.execute(s.ElseBranch)
		}
		return nil

	case *WhileStmt:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}

			err = in.execute(s.Body)
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			_, continued := err.(continueSignal)
			if err != nil && !continued {
				return err
			}

			if s.Increment != nil {
				if _, err := in.evaluate(s.Increment); err != nil {
					return err
				}
			}
		}

	case *FunctionStmt:
		fn := NewFunction(s, in.env, false)
		in.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ReturnStmt:
		var value Value
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return returnSignal{value: value}

	case *BreakStmt:
		return breakSignal{}

	case *ContinueStmt:
		return continueSignal{}

	case *ClassStmt:
		in.env.Define(s.Name.Lexeme, nil)

		methods := make(map[string]*Function)
		for _, m := range s.Methods {
			methods[m.Name.Lexeme] = NewFunction(m, in.env, m.Name.Lexeme == "init")
		}

		class := NewClass(s.Name.Lexeme, methods)
		return in.env.Assign(s.Name, class)

	default:
		panic("interpreter: unhandled statement type")
	}
}

// executeBlock runs stmts in env, restoring the previous environment
// on every exit path (normal, error, or a control signal) — the
// teacher's interpreter.go does the same env-swap with a deferred
// restore around block execution.
func (in *Interpreter) executeBlock(stmts []Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) evaluate(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *Literal:
		return e.Value, nil

	case *Grouping:
		return in.evaluate(e.Expression)

	case *Variable:
		return in.lookUpVariable(e.Name, e)

	case *Assign:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := in.locals[e]; ok {
			in.env.AssignAt(distance, e.Name, value)
		} else if err := in.globals.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *Unary:
		right, err := in.evaluate(e.Right)
		if err != nil {
			return nil, err
		}
		switch e.Op.Type {
		case MINUS:
			return in.negate(e.Op, right)
		case BANG:
			return !isTruthy(right), nil
		}
		panic("interpreter: unhandled unary operator")

	case *Logical:
		left, err := in.evaluate(e.Left)
		if err != nil {
			return nil, err
		}
		if e.Op.Type == OR {
			if isTruthy(left) {
				return left, nil
			}
		} else {
			if !isTruthy(left) {
				return left, nil
			}
		}
		return in.evaluate(e.Right)

	case *Binary:
		return in.evaluateBinary(e)

	case *Call:
		return in.evaluateCall(e)

	case *Get:
		obj, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		g, ok := obj.(Gettable)
		if !ok {
			return nil, newRuntimeError(e.Name, "Only instances have properties.")
		}
		return g.Get(e.Name)

	case *Set:
		obj, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		g, ok := obj.(Gettable)
		if !ok {
			return nil, newRuntimeError(e.Name, "Only instances have fields.")
		}
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		g.Set(e.Name, value)
		return value, nil

	case *This:
		return in.lookUpVariable(e.Keyword, e)

	default:
		panic("interpreter: unhandled expression type")
	}
}

func (in *Interpreter) lookUpVariable(name Token, expr Expr) (Value, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.env.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

func (in *Interpreter) evaluateCall(e *Call) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(e.Paren, fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}
	return fn.Call(in, args)
}

// evaluateBinary implements spec.md §4.5's operator table: arithmetic
// and comparison require numeric operands except "+", which overloads
// for string concatenation when both operands are strings.
func (in *Interpreter) evaluateBinary(e *Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case PLUS:
		if ln, lok := left.(float64); lok {
			if rn, rok := right.(float64); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(e.Op, "Operands must be two numbers or two strings.")

	case MINUS:
		l, r, err := in.checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil

	case SLASH:
		l, r, err := in.checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil

	case STAR:
		l, r, err := in.checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil

	case GREATER:
		l, r, err := in.checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil

	case GREATER_EQUAL:
		l, r, err := in.checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil

	case LESS:
		l, r, err := in.checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil

	case LESS_EQUAL:
		l, r, err := in.checkNumberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil

	case BANG_EQUAL:
		return !valuesEqual(left, right), nil

	case EQUAL_EQUAL:
		return valuesEqual(left, right), nil
	}

	panic("interpreter: unhandled binary operator")
}

// negate implements spec.md §4.5's unary "-" overload set: numeric
// negation, string reversal, and boolean logical negation.
func (in *Interpreter) negate(op Token, v Value) (Value, error) {
	switch val := v.(type) {
	case float64:
		return -val, nil
	case string:
		runes := []rune(val)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return string(runes), nil
	case bool:
		return !val, nil
	default:
		return nil, newRuntimeError(op, "Operand must be a number, string, or boolean.")
	}
}

func (in *Interpreter) checkNumberOperands(op Token, a, b Value) (float64, float64, error) {
	an, aok := a.(float64)
	bn, bok := b.(float64)
	if !aok || !bok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	return an, bn, nil
}
