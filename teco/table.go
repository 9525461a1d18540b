package teco

// cmdOpts is a bitmask of the modifiers a command accepts, checked against
// what was actually scanned before the command's handler runs. Grounded on
// the reference implementation's per-entry option string (e.g. "n :" for a
// command taking an n argument and a colon modifier), expressed here as a
// typed Go bitmask built from constants instead of a parsed mini-language.
type cmdOpts uint16

const (
	optM      cmdOpts = 1 << iota // accepts an m argument (via comma)
	optN                          // accepts an n argument
	optReqN                       // n argument is mandatory
	optColon                      // accepts ":"
	optDColon                     // accepts "::"
	optAtsign                     // accepts "@" (alternate text delimiter)
	optQReg                       // followed by a Q-register name
	optText1                      // followed by one delimited text argument
	optText2                      // followed by two delimited text arguments
)

func (o cmdOpts) has(bit cmdOpts) bool { return o&bit != 0 }

// entryKind classifies a dispatch table entry for the generic scanner loop
// in Interp.scanCommand.
type entryKind int

const (
	kindSkip   entryKind = iota // ignored (whitespace, NUL, ...)
	kindBad                     // always illegal
	kindMod                     // modifier: ":", "::", "@"
	kindExpr                    // expression-building token: digit/operator/operand
	kindAction                  // a command: validates, consumes args, executes
)

// cmdEntry is one dispatch table slot, the Go analogue of the reference
// implementation's cmd_table[] function-pointer row.
type cmdEntry struct {
	kind entryKind
	fn   func(ip *Interp, cmd *Command) error
	opts cmdOpts
}

// primaryTable is indexed by the upper-cased command character (or, for
// control characters produced by "^X" composition, the raw control code).
var primaryTable [128]*cmdEntry

// eTable and fTable hold the secondary dispatch for "E" and "F" prefixed
// commands, keyed by the upper-cased character following the prefix.
var eTable = map[byte]*cmdEntry{}
var fTable = map[byte]*cmdEntry{}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func reg(tbl *[128]*cmdEntry, c byte, e *cmdEntry) {
	tbl[c] = e
}

func init() {
	// Ignored characters: whitespace and layout within a command string.
	for _, c := range []byte{SPACE, CR, LF, TAB, NUL, FF, VT} {
		reg(&primaryTable, c, &cmdEntry{kind: kindSkip})
	}

	// Always-illegal characters (reserved/undefined in the core command
	// set).
	for _, c := range []byte{'`', '{', '}', '~', DEL, FS, GS, RS, US} {
		reg(&primaryTable, c, &cmdEntry{kind: kindBad})
	}

	// Modifiers.
	reg(&primaryTable, ':', &cmdEntry{kind: kindMod, fn: scanColon})
	reg(&primaryTable, '@', &cmdEntry{kind: kindMod, fn: scanAtsign})

	// Expression-building tokens: operators, grouping, operand commands.
	reg(&primaryTable, '+', &cmdEntry{kind: kindExpr, fn: evalPlus})
	reg(&primaryTable, '-', &cmdEntry{kind: kindExpr, fn: evalMinus})
	reg(&primaryTable, '*', &cmdEntry{kind: kindExpr, fn: evalOperator(opMul)})
	reg(&primaryTable, '/', &cmdEntry{kind: kindExpr, fn: evalOperator(opDiv)})
	reg(&primaryTable, '&', &cmdEntry{kind: kindExpr, fn: evalOperator(opAnd)})
	reg(&primaryTable, '#', &cmdEntry{kind: kindExpr, fn: evalOperator(opOr)})
	reg(&primaryTable, '(', &cmdEntry{kind: kindExpr, fn: evalLParen})
	reg(&primaryTable, ')', &cmdEntry{kind: kindExpr, fn: evalRParen})
	reg(&primaryTable, ',', &cmdEntry{kind: kindExpr, fn: evalComma})
	reg(&primaryTable, '.', &cmdEntry{kind: kindExpr, fn: evalDot})
	reg(&primaryTable, 'Z', &cmdEntry{kind: kindExpr, fn: evalZ})

	// Loop commands.
	reg(&primaryTable, '<', &cmdEntry{kind: kindAction, fn: execLessThan, opts: optN})
	reg(&primaryTable, '>', &cmdEntry{kind: kindAction, fn: execGreaterThan})
	reg(&primaryTable, ';', &cmdEntry{kind: kindAction, fn: execSemicolon, opts: optN | optReqN | optColon})

	// Conditional commands.
	reg(&primaryTable, '"', &cmdEntry{kind: kindAction, fn: execQuote, opts: optN | optReqN})
	reg(&primaryTable, '|', &cmdEntry{kind: kindAction, fn: execVBar})
	reg(&primaryTable, '\'', &cmdEntry{kind: kindAction, fn: execApostrophe})

	// Q-register pushdown and access.
	reg(&primaryTable, '[', &cmdEntry{kind: kindAction, fn: execLBracket, opts: optQReg})
	reg(&primaryTable, ']', &cmdEntry{kind: kindAction, fn: execRBracket, opts: optQReg | optColon})
	reg(&primaryTable, 'U', &cmdEntry{kind: kindAction, fn: execU, opts: optN | optReqN | optQReg})
	reg(&primaryTable, 'Q', &cmdEntry{kind: kindExpr, fn: evalQ})
	reg(&primaryTable, '%', &cmdEntry{kind: kindAction, fn: execPercent, opts: optN | optQReg | optColon})

	// Macro invocation.
	reg(&primaryTable, 'M', &cmdEntry{kind: kindAction, fn: execM, opts: optQReg | optColon})

	// Arithmetic/print.
	reg(&primaryTable, '=', &cmdEntry{kind: kindAction, fn: execEquals, opts: optN | optReqN | optColon | optDColon})

	// Misc control/diagnostic.
	reg(&primaryTable, '?', &cmdEntry{kind: kindAction, fn: execQuestion})
	reg(&primaryTable, ESC, &cmdEntry{kind: kindAction, fn: execEscape, opts: optN})

	// Buffer-editing commands (thin wrappers over the EditBuffer
	// collaborator, whose own internal semantics are out of core scope,
	// but which the core dispatch must still reach).
	reg(&primaryTable, 'C', &cmdEntry{kind: kindAction, fn: execC, opts: optN | optColon})
	reg(&primaryTable, 'R', &cmdEntry{kind: kindAction, fn: execR, opts: optN | optColon})
	reg(&primaryTable, 'D', &cmdEntry{kind: kindAction, fn: execD, opts: optM | optN | optColon})
	reg(&primaryTable, 'K', &cmdEntry{kind: kindAction, fn: execK, opts: optM | optN | optColon})
	reg(&primaryTable, 'I', &cmdEntry{kind: kindAction, fn: execI, opts: optN | optAtsign | optText1})
	reg(&primaryTable, 'S', &cmdEntry{kind: kindAction, fn: execS, opts: optN | optColon | optAtsign | optText1})
	reg(&primaryTable, 'J', &cmdEntry{kind: kindAction, fn: execJ, opts: optN | optColon})
	reg(&primaryTable, 'X', &cmdEntry{kind: kindAction, fn: execX, opts: optM | optN | optColon | optQReg})
	reg(&primaryTable, 'G', &cmdEntry{kind: kindAction, fn: execG, opts: optColon | optQReg})
	reg(&primaryTable, '\\', &cmdEntry{kind: kindAction, fn: execBackslash, opts: optN})

	registerCaretTable()
	registerETable()
	registerFTable()
}
