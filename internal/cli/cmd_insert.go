package cli

import (
	"context"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/pictdb/pictdb"
	"github.com/pictdb/pictdb/imagecodec"
	"github.com/pictdb/pictdb/internal/config"
	"github.com/pictdb/pictdb/internal/storagefs"
)

// InsertCmd inserts a JPEG file into the database under a given id.
func InsertCmd(cfg config.Config, codec *imagecodec.JPEG) *Command {
	flags := flag.NewFlagSet("insert", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "insert <id> <jpeg-file>",
		Short: "Insert a JPEG file under a picture id",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: usage: insert <id> <jpeg-file>", pictdb.ErrNotEnoughArguments)
			}

			lock, err := tryLockDB(cfg.DBPathAbs)
			if err != nil {
				return err
			}
			defer lock.Close()

			id, path := args[0], args[1]

			payload, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("%w: reading %s: %v", pictdb.ErrIO, path, err)
			}

			db, err := pictdb.Open(storagefs.NewReal(), cfg.DBPathAbs, pictdb.WithCodec(codec))
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Insert(payload, id); err != nil {
				return err
			}

			o.Printf("inserted %q (%d bytes)\n", id, len(payload))

			return nil
		},
	}
}
