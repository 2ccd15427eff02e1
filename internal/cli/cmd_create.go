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

// CreateCmd lays down a new, empty database file at the configured path.
func CreateCmd(cfg config.Config, codec *imagecodec.JPEG) *Command {
	flags := flag.NewFlagSet("create", flag.ContinueOnError)
	maxFiles := flags.Uint32("max-files", 0, "maximum number of pictures (default "+fmt.Sprint(pictdb.DefaultMaxFiles)+")")
	thumbW := flags.Uint16("thumb-width", 0, "thumbnail width bound")
	thumbH := flags.Uint16("thumb-height", 0, "thumbnail height bound")
	smallW := flags.Uint16("small-width", 0, "small width bound")
	smallH := flags.Uint16("small-height", 0, "small height bound")

	return &Command{
		Flags: flags,
		Usage: "create [flags]",
		Short: "Create a new, empty picture database",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			lock, err := tryLockDB(cfg.DBPathAbs)
			if err != nil {
				return err
			}
			defer lock.Close()

			dbCfg := pictdb.CreateConfig{
				MaxFiles: firstNonZero(*maxFiles, cfg.MaxFiles),
				ThumbW:   firstNonZeroU16(*thumbW, cfg.ThumbW),
				ThumbH:   firstNonZeroU16(*thumbH, cfg.ThumbH),
				SmallW:   firstNonZeroU16(*smallW, cfg.SmallW),
				SmallH:   firstNonZeroU16(*smallH, cfg.SmallH),
			}

			db, err := pictdb.Create(storagefs.NewReal(), cfg.DBPathAbs, dbCfg, pictdb.WithCodec(codec))
			if err != nil {
				return err
			}
			defer db.Close()

			o.Printf("created %s\n", cfg.DBPathAbs)

			return nil
		},
	}
}

func firstNonZero(a, b uint32) uint32 {
	if a != 0 {
		return a
	}

	return b
}

func firstNonZeroU16(a, b uint16) uint16 {
	if a != 0 {
		return a
	}

	return b
}
