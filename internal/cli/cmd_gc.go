package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/pictdb/pictdb"
	"github.com/pictdb/pictdb/imagecodec"
	"github.com/pictdb/pictdb/internal/config"
	"github.com/pictdb/pictdb/internal/storagefs"
)

// GCCmd compacts the database in place, dropping deleted slots and
// reclaiming the space their payloads occupied.
func GCCmd(cfg config.Config, codec *imagecodec.JPEG) *Command {
	flags := flag.NewFlagSet("gc", flag.ContinueOnError)

	return &Command{
		Flags: flags,
		Usage: "gc",
		Short: "Compact the database, reclaiming space from deleted pictures",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			lock, err := tryLockDB(cfg.DBPathAbs)
			if err != nil {
				return err
			}
			defer lock.Close()

			dst := cfg.DBPathAbs + ".gc"

			if err := pictdb.GC(storagefs.NewReal(), cfg.DBPathAbs, dst, codec); err != nil {
				return err
			}

			o.Printf("compacted %s\n", cfg.DBPathAbs)

			return nil
		},
	}
}
