package wsmfs

// Command is one CLI subcommand. The name must match the subcommand string
// accepted by Parse so dispatch in Main stays table-free.
type Command interface {
	Name() string
}

// RunCommand starts the HTTP server. All options live in Config.
type RunCommand struct{}

func (c *RunCommand) Name() string {
	return "run"
}

// MigrateCommand creates or updates the database schema.
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}
