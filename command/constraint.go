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
	CmdAdmin
	CmdNoScript
	CmdRandom
	CmdLoading
	CmdStale
	CmdFast
)

var flagNames = []struct {
	flag Flag
	code byte
	name string
}{
	{CmdWrite, 'w', "write"},
	{CmdReadOnly, 'r', "readonly"},
	{CmdAdmin, 'a', "admin"},
	{CmdNoScript, 's', "noscript"},
	{CmdRandom, 'R', "random"},
	{CmdLoading, 'l', "loading"},
	{CmdStale, 't', "stale"},
	{CmdFast, 'F', "fast"},
}

// String returns the string representation of flag
func (f Flag) String() string {
	for _, n := range flagNames {
		if n.flag == f {
			return n.name
		}
	}
	return ""
}

// Names returns the names of every flag set in f, in declaration order
func (f Flag) Names() []string {
	var s []string
	for _, n := range flagNames {
		if f&n.flag != 0 {
			s = append(s, n.name)
		}
	}
	return s
}

// flags parse sflags to flags
// This is the meaning of the flags:
//
//  w: write command (may modify the key space).
//  r: read command  (will never modify the key space).
//  a: admin command, like SAVE or SHUTDOWN.
//  s: command not allowed in scripts.
//  R: random command. Command is not deterministic, that is, the same command
//     with the same arguments may have different results.
//  l: Allow command while loading the database.
//  t: Allow command while a slave has stale data.
//  F: Fast command: O(1) or O(log(N)) command that should never delay
//     its execution.
func flags(s string) Flag {
	flags := Flag(0)
	for i := 0; i < len(s); i++ {
		found := false
		for _, n := range flagNames {
			if n.code == s[i] {
				flags |= n.flag
				found = true
				break
			}
		}
		if !found {
			panic("Unsupported command flag")
		}
	}
	return flags
}
