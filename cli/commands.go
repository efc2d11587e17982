package cli

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Format FormatCmd `cmd:"" default:"withargs" help:"Format a trader config file to canonical form."`
	Check  CheckCmd  `cmd:"" help:"Parse a trader config file and report structural errors."`
	Dump   DumpCmd   `cmd:"" help:"Parse a trader config file and dump its token tree."`
}
