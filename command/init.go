package command

var commands map[string]*Desc

func init() {
	// commands contains all commands that open to clients
	// it is filled in init to break the reference cycle through RedisCommand
	commands = map[string]*Desc{
		// connections
		"echo":  &Desc{Proc: Echo, Cons: Constraint{2, flags("F"), 0, 0, 0}},
		"ping":  &Desc{Proc: Ping, Cons: Constraint{-1, flags("tF"), 0, 0, 0}},
		"quit":  &Desc{Proc: Quit, Cons: Constraint{1, 0, 0, 0, 0}},
		"hello": &Desc{Proc: Hello, Cons: Constraint{-1, flags("sltF"), 0, 0, 0}},

		// server
		"client":  &Desc{Proc: Client, Cons: Constraint{-2, flags("as"), 0, 0, 0}},
		"command": &Desc{Proc: RedisCommand, Cons: Constraint{-1, flags("lt"), 0, 0, 0}},
		"time":    &Desc{Proc: Time, Cons: Constraint{1, flags("RF"), 0, 0, 0}},
		"info":    &Desc{Proc: Info, Cons: Constraint{-1, flags("lt"), 0, 0, 0}},
	}
}
