package conf

// MockConf init and return respd mock conf
func MockConf() *Respd {
	return &Respd{
		Server: Server{
			Listen:        "127.0.0.1:16380",
			MaxConnection: 100,
			ReadBuffer:    4096,
			MaxBuffer:     1 << 20,
		},
		Status: Status{
			Listen: "127.0.0.1:16381",
		},
		Logger: Logger{
			Name:  "respd",
			Path:  "stdout",
			Level: "debug",
		},
		PIDFileName: "respd.pid",
	}
}
