package command

var commands map[string]Desc

func init() {
	// commands contains all commands that open to clients
	commands = map[string]Desc{
		// connections
		"auth": Desc{Proc: Auth, Cons: Constraint{2, flags("sltF"), 0, 0, 0}},
		"echo": Desc{Proc: Echo, Cons: Constraint{2, flags("F"), 0, 0, 0}},
		"ping": Desc{Proc: Ping, Cons: Constraint{-1, flags("tF"), 0, 0, 0}},
		"quit": Desc{Proc: Quit, Cons: Constraint{1, 0, 0, 0, 0}},

		// strings
		"get": Desc{Proc: Get, Cons: Constraint{2, flags("rF"), 1, 1, 1}},
		"set": Desc{Proc: Set, Cons: Constraint{-3, flags("wm"), 1, 1, 1}},

		// keys
		"del":    Desc{Proc: Delete, Cons: Constraint{-2, flags("w"), 1, -1, 1}},
		"exists": Desc{Proc: Exists, Cons: Constraint{-2, flags("rF"), 1, -1, 1}},

		// pubsub
		"publish":     Desc{Proc: Publish, Cons: Constraint{3, flags("pltF"), 0, 0, 0}},
		"subscribe":   Desc{Proc: Subscribe, Cons: Constraint{-2, flags("pslt"), 0, 0, 0}},
		"unsubscribe": Desc{Proc: Unsubscribe, Cons: Constraint{-1, flags("pslt"), 0, 0, 0}},

		// server
		"command": Desc{Proc: RedisCommand, Cons: Constraint{-1, flags("lt"), 0, 0, 0}},
		"info":    Desc{Proc: Info, Cons: Constraint{-1, flags("lt"), 0, 0, 0}},
	}
	for name, desc := range commands {
		desc.Stat = &Statistic{}
		commands[name] = desc
	}
}
