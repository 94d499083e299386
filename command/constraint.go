package command

// Constraint is the rule of command
type Constraint struct {
	Arity    int // number of arguments, it is possible to use -N to say >= N
	Flags    Flag
	FirstKey int
	LastKey  int
	KeyStep  int
}

// Flag is the redis command flag
type Flag int

// Command flags
const (
	CmdWrite Flag = 1 << iota
	CmdReadOnly
	CmdDenyOOM
	CmdAdmin
	CmdPubsub
	CmdNoScript
	CmdLoading
	CmdStale
	CmdFast

	numFlags = iota
)

var flagNames = map[Flag]string{
	CmdWrite:    "write",
	CmdReadOnly: "readonly",
	CmdDenyOOM:  "denyoom",
	CmdAdmin:    "admin",
	CmdPubsub:   "pubsub",
	CmdNoScript: "noscript",
	CmdLoading:  "loading",
	CmdStale:    "stale",
	CmdFast:     "fast",
}

var flagLetters = map[byte]Flag{
	'w': CmdWrite,
	'r': CmdReadOnly,
	'm': CmdDenyOOM,
	'a': CmdAdmin,
	'p': CmdPubsub,
	's': CmdNoScript,
	'l': CmdLoading,
	't': CmdStale,
	'F': CmdFast,
}

// String returns the string representation of flag
func (f Flag) String() string {
	return flagNames[f]
}

// flags parse sflags to flags, the letters follow the redis command table:
//
//  w: write command (may modify the key space).
//  r: read command  (will never modify the key space).
//  m: may increase memory usage once called.
//  a: admin command.
//  p: Pub/Sub related command.
//  s: command not allowed in scripts.
//  l: allow command while loading the database.
//  t: allow command while a slave has stale data.
//  F: fast command, O(1) or O(log(N)).
func flags(s string) Flag {
	flags := Flag(0)
	for i := 0; i < len(s); i++ {
		f, ok := flagLetters[s[i]]
		if !ok {
			panic("Unsupported command flag")
		}
		flags |= f
	}
	return flags
}

func parseFlags(flags Flag) []string {
	var s []string
	for i := uint(0); i < numFlags; i++ {
		f := Flag(1 << i)
		if f&flags != 0 {
			s = append(s, f.String())
		}
	}
	return s
}
