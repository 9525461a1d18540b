package teco

// scanState is the Command descriptor's accumulation state.
type scanState int

const (
	stateNull scanState = iota
	stateExpr
	stateDone
)

// Command is the descriptor accumulated while scanning a single top-level
// command. Text arguments are not carried as fields here: scanDelimitedTextArg
// returns each one as an owned string directly from the CmdBuf snapshot,
// materialized only when it needs to outlive the command (e.g. stored into
// a Q-register), so no raw pointer into the buffer survives past the scan.
type Command struct {
	c1, c2 byte

	mSet bool
	mArg Value
	nSet bool
	nArg Value

	colon  bool
	dcolon bool
	atsign bool

	qreg   byte // raw register character, before local-prefix resolution
	qlocal bool
	qSet   bool
	delim  byte

	state scanState

	// opts is the option mask resolved from the dispatch table for c1 (or
	// the secondary E/F/^ table), used to validate modifiers as they are
	// scanned.
	opts cmdOpts
}

// reset restores cmd to its null state.
func (cmd *Command) reset() {
	*cmd = Command{delim: ESC}
}

// ASCII control codes used as sentinels/delimiters throughout the scanner.
const (
	NUL   byte = 0x00
	BS    byte = 0x08
	TAB   byte = 0x09
	LF    byte = 0x0A
	VT    byte = 0x0B
	FF    byte = 0x0C
	CR    byte = 0x0D
	ESC   byte = 0x1B
	FS    byte = 0x1C
	GS    byte = 0x1D
	RS    byte = 0x1E
	US    byte = 0x1F
	SPACE byte = 0x20
	DEL   byte = 0x7F
)
