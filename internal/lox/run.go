package lox

// Run scans, parses, resolves, and evaluates source against interp,
// staged as four explicit passes per spec.md §2 and §7: resolution
// never runs over a program with scan/parse errors, and evaluation
// never runs over a program with resolution errors.
//
// interp is supplied by the caller rather than constructed here so a
// REPL can reuse the same Interpreter — and therefore the same
// globals environment — across every line it reads, the way the
// teacher's main.go builds one `interpreter` before its read loop and
// original_source's Main.java keeps a single static interpreter for
// the whole session. Constructing a fresh Interpreter per call would
// reset globals on every line and make earlier declarations invisible.
func Run(source string, interp *Interpreter) {
	session := interp.session

	var scanner Scanner
	scanner.Init(source, session)
	tokens := scanner.ScanTokens()
	if session.HadError() {
		return
	}

	parser := NewParser(tokens, session)
	stmts := parser.Parse()
	if session.HadError() {
		return
	}

	resolver := NewResolver(interp, session)
	resolver.Resolve(stmts)
	if session.HadError() {
		return
	}

	interp.Interpret(stmts)
}
