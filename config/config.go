package config

// Values bound to cli flags.
var (
	ChainID       uint64
	Account       string
	To            string
	Value         string
	Data          string
	OpFile        string
	JSONOutput    bool
	MaxIterations int
	ConfigFile    string
	LogLevel      string
)
