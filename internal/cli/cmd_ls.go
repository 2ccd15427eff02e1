package cli

import (
	"context"
	"encoding/json"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/pictdb/pictdb"
	"github.com/pictdb/pictdb/imagecodec"
	"github.com/pictdb/pictdb/internal/config"
	"github.com/pictdb/pictdb/internal/storagefs"
)

// LsCmd lists the database's live pictures, as the text ledger (spec
// default) or, with --json, the STRUCTURED list document.
func LsCmd(cfg config.Config, codec *imagecodec.JPEG) *Command {
	flags := flag.NewFlagSet("ls", flag.ContinueOnError)
	asJSON := flags.Bool("json", false, "print the structured (JSON) listing instead of the text ledger")

	return &Command{
		Flags: flags,
		Usage: "ls [flags]",
		Short: "List the pictures in the database",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			db, err := pictdb.Open(storagefs.NewReal(), cfg.DBPathAbs, pictdb.WithCodec(codec))
			if err != nil {
				return err
			}
			defer db.Close()

			if *asJSON {
				encoded, err := json.MarshalIndent(db.ListStructured(), "", "  ")
				if err != nil {
					return fmt.Errorf("%w: encoding listing: %v", pictdb.ErrIO, err)
				}

				o.Printf("%s\n", encoded)

				return nil
			}

			db.ListText(o.out)

			return nil
		},
	}
}
