package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/pictdb/pictdb/internal/config"
)

// PrintConfigCmd prints the fully resolved configuration, for diagnosing
// which config file (if any) is in effect.
func PrintConfigCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("print-config", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "print-config",
		Short: "Print the resolved configuration",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.Println("db_path=" + cfg.DBPathAbs)

			if cfg.Sources.Global != "" {
				o.Println("global_config=" + cfg.Sources.Global)
			}

			if cfg.Sources.Project != "" {
				o.Println("project_config=" + cfg.Sources.Project)
			}

			return nil
		},
	}
}
