package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/pictdb/pictdb"
	"github.com/pictdb/pictdb/imagecodec"
	"github.com/pictdb/pictdb/internal/config"
	"github.com/pictdb/pictdb/internal/storagefs"
)

// DeleteCmd retires a picture's slot.
func DeleteCmd(cfg config.Config, codec *imagecodec.JPEG) *Command {
	flags := flag.NewFlagSet("delete", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "delete <id>",
		Short: "Delete a picture by id",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: usage: delete <id>", pictdb.ErrNotEnoughArguments)
			}

			lock, err := tryLockDB(cfg.DBPathAbs)
			if err != nil {
				return err
			}
			defer lock.Close()

			db, err := pictdb.Open(storagefs.NewReal(), cfg.DBPathAbs, pictdb.WithCodec(codec))
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Delete(args[0]); err != nil {
				return err
			}

			o.Printf("deleted %q\n", args[0])

			return nil
		},
	}
}
