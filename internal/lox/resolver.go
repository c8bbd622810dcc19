package lox

// functionType tags what kind of function body the resolver is
// currently inside, extending the teacher's NONE/FUNCTION pair with
// METHOD and INITIALIZER so "this" and bare "return" inside an
// initializer can be resolved correctly.
type functionType byte

const (
	fnNone functionType = iota
	fnFunction
	fnMethod
	fnInitializer
)

type classType byte

const (
	classNone classType = iota
	classInsideClass
)

// scope maps a name to whether its declaration has finished resolving
// its initializer yet (spec.md §4.3).
type scope map[string]bool

// Resolver is the single pre-evaluation pass over the AST that
// computes, for every variable reference, how many enclosing
// environments to hop at evaluation time. Grounded on the teacher's
// resolver.go (Stack[map[string]bool] scope stack, declare/define/
// resolveLocal shape) and stack.go's generic Stack[T].
//
// Deviates from both the teacher and original_source per SPEC_FULL.md's
// Resolved Open Questions: it recurses into class method bodies and
// opens a scope around each class body that binds "this".
type Resolver struct {
	interp *Interpreter
	scopes Stack[scope]

	currentFunction functionType
	currentClass    classType
	loopDepth       int

	session *Session
}

func NewResolver(interp *Interpreter, s *Session) *Resolver {
	return &Resolver{interp: interp, session: s}
}

// Resolve resolves a list of top-level statements.
func (r *Resolver) Resolve(stmts []Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) beginScope() { r.scopes.Push(make(scope)) }
func (r *Resolver) endScope()   { r.scopes.Pop() }

func (r *Resolver) declare(name Token) {
	if r.scopes.Empty() {
		return
	}
	sc := r.scopes.Peek()
	if _, ok := sc[name.Lexeme]; ok {
		r.session.ReportTokenError(name, "Already a variable with this name in this scope.")
	}
	sc[name.Lexeme] = false
}

func (r *Resolver) define(name Token) {
	if r.scopes.Empty() {
		return
	}
	r.scopes.Peek()[name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for hops := 0; hops < r.scopes.Depth(); hops++ {
		sc, _ := r.scopes.FromTop(hops)
		if _, ok := sc[name.Lexeme]; ok {
			r.interp.Resolve(expr, hops)
			return
		}
	}
	// Not found in any scope: resolves to globals at runtime.
}

func (r *Resolver) resolveStmts(stmts []Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *ExpressionStmt:
		r.resolveExpr(s.Expression)
	case *PrintStmt:
		r.resolveExpr(s.Expression)
	case *IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}
	case *WhileStmt:
		r.resolveExpr(s.Condition)
		r.loopDepth++
		r.resolveStmt(s.Body)
		if s.Increment != nil {
			r.resolveExpr(s.Increment)
		}
		r.loopDepth--
	case *ReturnStmt:
		if r.currentFunction == fnNone {
			r.session.ReportTokenError(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.session.ReportTokenError(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *BreakStmt:
		if r.loopDepth == 0 {
			r.session.ReportTokenError(s.Keyword, "Can't use 'break' outside of a loop.")
		}
	case *ContinueStmt:
		if r.loopDepth == 0 {
			r.session.ReportTokenError(s.Keyword, "Can't use 'continue' outside of a loop.")
		}
	case *ClassStmt:
		r.resolveClass(s)
	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveFunction(fn *FunctionStmt, typ functionType) {
	enclosingFunction := r.currentFunction
	enclosingLoop := r.loopDepth
	r.currentFunction = typ
	r.loopDepth = 0

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
	r.loopDepth = enclosingLoop
}

// resolveClass declares the class name, then — deviating from the
// teacher and original_source (SPEC_FULL.md Resolved Open Question
// #1) — opens a scope binding "this" and resolves every method body
// within it as a function resolution, so method bodies referencing
// fields or enclosing locals resolve correctly instead of silently
// falling through to globals.
func (r *Resolver) resolveClass(stmt *ClassStmt) {
	r.declare(stmt.Name)
	r.define(stmt.Name)

	enclosingClass := r.currentClass
	r.currentClass = classInsideClass

	r.beginScope()
	r.scopes.Peek()["this"] = true

	for _, method := range stmt.Methods {
		typ := fnMethod
		if method.Name.Lexeme == "init" {
			typ = fnInitializer
		}
		r.resolveFunction(method, typ)
	}

	r.endScope()
	r.currentClass = enclosingClass
}

func (r *Resolver) resolveExpr(expr Expr) {
	switch e := expr.(type) {
	case *Literal:
		// nothing to resolve
	case *Variable:
		if !r.scopes.Empty() {
			if defined, ok := r.scopes.Peek()[e.Name.Lexeme]; ok && !defined {
				r.session.ReportTokenError(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *Unary:
		r.resolveExpr(e.Right)
	case *Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *Grouping:
		r.resolveExpr(e.Expression)
	case *Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *Get:
		r.resolveExpr(e.Object)
	case *Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *This:
		if r.currentClass == classNone {
			r.session.ReportTokenError(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	default:
		panic("resolver: unhandled expression type")
	}
}
