package installer

// Mode selects the pipeline a command runs through.
type Mode int

const (
	// ModeInstall resolves or clones the project, installs it and runs a
	// target script.
	ModeInstall Mode = iota
	// ModeQuery reads installed state through the Python CLI module and
	// never clones or installs.
	ModeQuery
	// ModeDispatch forwards to the project CLI script in the work dir.
	ModeDispatch
)

func (m Mode) String() string {
	switch m {
	case ModeInstall:
		return "install"
	case ModeQuery:
		return "query"
	case ModeDispatch:
		return "dispatch"
	default:
		return "unknown"
	}
}

// Route maps a command onto a pipeline and target.
type Route struct {
	Command string
	Mode    Mode

	// Script is the target path relative to the project dir. Empty means
	// the configured CLI script.
	Script string

	// Subcommand, when set, is passed to Script before forwarded args.
	Subcommand string
}

var routes = map[string]Route{
	"init":      {Command: "init", Mode: ModeInstall, Script: "run_auto_config.py"},
	"install":   {Command: "install", Mode: ModeInstall, Script: "run_auto_config.py"},
	"deploy":    {Command: "deploy", Mode: ModeInstall, Script: "deploy_cli.py"},
	"integrate": {Command: "integrate", Mode: ModeInstall, Subcommand: "integrate"},

	"list":     {Command: "list", Mode: ModeQuery},
	"validate": {Command: "validate", Mode: ModeQuery},

	"exec":     {Command: "exec", Mode: ModeDispatch, Subcommand: "exec"},
	"shell":    {Command: "shell", Mode: ModeDispatch, Subcommand: "shell"},
	"slash":    {Command: "slash", Mode: ModeDispatch, Subcommand: "slash"},
	"security": {Command: "security", Mode: ModeDispatch, Subcommand: "security"},
	"evaluate": {Command: "evaluate", Mode: ModeDispatch, Script: "test_evaluation_framework.py"},
}

// Lookup returns the route for command.
func Lookup(command string) (Route, bool) {
	r, ok := routes[command]
	return r, ok
}

// MustRoute returns the route for a known command and panics otherwise.
// It is used by command wiring, where names are compile-time constants.
func MustRoute(command string) Route {
	r, ok := Lookup(command)
	if !ok {
		panic("installer: unknown route " + command)
	}
	return r
}
