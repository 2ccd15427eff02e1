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

// ReadCmd reads a picture at a given resolution and writes it to a file
// (or stdout, when out is "-").
func ReadCmd(cfg config.Config, codec *imagecodec.JPEG) *Command {
	flags := flag.NewFlagSet("read", flag.ContinueOnError)
	out := flags.StringP("out", "o", "", "output file path (default derived from id and resolution)")

	return &Command{
		Flags: flags,
		Usage: "read <id> <resolution>",
		Short: "Read a picture at a resolution (thumb/small/orig)",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: usage: read <id> <resolution>", pictdb.ErrNotEnoughArguments)
			}

			id, resName := args[0], args[1]

			resCode, err := pictdb.ParseResolution(resName)
			if err != nil {
				return err
			}

			db, err := pictdb.Open(storagefs.NewReal(), cfg.DBPathAbs, pictdb.WithCodec(codec))
			if err != nil {
				return err
			}
			defer db.Close()

			payload, err := db.Read(id, resCode)
			if err != nil {
				return err
			}

			outPath := *out
			if outPath == "" {
				outPath = pictdb.FileName(id, resCode)
			}

			if outPath == "-" {
				_, err = os.Stdout.Write(payload)
			} else {
				err = os.WriteFile(outPath, payload, 0o644)
			}

			if err != nil {
				return fmt.Errorf("%w: writing output: %v", pictdb.ErrIO, err)
			}

			if outPath != "-" {
				o.Printf("wrote %s (%d bytes)\n", outPath, len(payload))
			}

			return nil
		},
	}
}
