package app

// Config holds everything an App instance needs to run.
type Config struct {
	TemplatePath string // .hcl file or directory
	DataPath     string // codeblock tag table
	Send         bool   // deliver via the recode item API
	Addr         string // recode item API address
	LogFormat    string
	LogLevel     string
}
