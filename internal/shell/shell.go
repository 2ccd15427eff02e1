// Package shell implements the interactive REPL front end for exploring a
// picture database, grounded on the teacher's cmd/sloty REPL: a
// liner-backed prompt with history and tab completion, dispatching to
// small per-command handlers.
package shell

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/pictdb/pictdb"
	"github.com/pictdb/pictdb/imagecodec"
	"github.com/pictdb/pictdb/internal/storagefs"
)

// Run parses args for the "pictdb shell <db-file>" invocation and starts
// the REPL. The env map is accepted for symmetry with cli.Run but the
// shell does not currently read any environment overrides.
func Run(args []string, _ map[string]string) int {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	quality := fs.Int("quality", 0, "JPEG encode quality for lazily derived resolutions (default 87)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pictdb shell [options] <db-file>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return 1
	}

	path := fs.Arg(0)

	codec := imagecodec.New()
	if *quality > 0 {
		codec.Quality = *quality
	}

	fsys := storagefs.NewReal()

	var (
		db  *pictdb.DB
		err error
	)

	if _, statErr := os.Stat(path); statErr != nil {
		db, err = pictdb.Create(fsys, path, pictdb.CreateConfig{}, pictdb.WithCodec(codec))
	} else {
		db, err = pictdb.Open(fsys, path, pictdb.WithCodec(codec))
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return int(pictdb.CodeOf(err))
	}
	defer db.Close()

	repl := &repl{db: db, path: path}

	if err := repl.run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	return 0
}

type repl struct {
	db    *pictdb.DB
	path  string
	liner *liner.State
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".pictdb_history")
}

func (r *repl) run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	h := r.db.Header()
	fmt.Printf("pictdb shell - %s (num_files=%d, max_files=%d)\n", r.path, h.NumFiles, h.MaxFiles)
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("pictdb> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println("\nBye!")
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "insert":
			r.cmdInsert(args)

		case "read":
			r.cmdRead(args)

		case "delete", "del":
			r.cmdDelete(args)

		case "ls", "list":
			r.cmdLs()

		case "info":
			r.cmdInfo()

		case "gc":
			r.cmdGC()

		case "clear", "cls":
			fmt.Print("\033[H\033[2J")

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *repl) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

func (r *repl) completer(line string) []string {
	commands := []string{
		"insert", "read", "delete", "del",
		"ls", "list", "info", "gc",
		"clear", "cls", "help", "exit", "quit", "q",
	}

	lower := strings.ToLower(line)

	var completions []string

	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *repl) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  insert <id> <jpeg-file>     Insert a JPEG file under an id")
	fmt.Println("  read <id> <res> [out-file]  Read a resolution (thumb/small/orig)")
	fmt.Println("  delete <id>                 Delete a picture")
	fmt.Println("  ls                          List live pictures")
	fmt.Println("  info                        Show database header")
	fmt.Println("  gc                          Compact the database in place")
	fmt.Println("  help                        Show this help")
	fmt.Println("  exit / quit / q             Exit")
}

func (r *repl) cmdInsert(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: insert <id> <jpeg-file>")
		return
	}

	payload, err := os.ReadFile(args[1])
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", args[1], err)
		return
	}

	if err := r.db.Insert(payload, args[0]); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("OK: inserted %q (%d bytes)\n", args[0], len(payload))
}

func (r *repl) cmdRead(args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: read <id> <resolution> [out-file]")
		return
	}

	resCode, err := pictdb.ParseResolution(args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	payload, err := r.db.Read(args[0], resCode)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	outPath := pictdb.FileName(args[0], resCode)
	if len(args) >= 3 {
		outPath = args[2]
	}

	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		fmt.Printf("Error writing %s: %v\n", outPath, err)
		return
	}

	fmt.Printf("OK: wrote %s (%d bytes)\n", outPath, len(payload))
}

func (r *repl) cmdDelete(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: delete <id>")
		return
	}

	if err := r.db.Delete(args[0]); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("OK: deleted %q\n", args[0])
}

func (r *repl) cmdLs() {
	r.db.ListText(os.Stdout)
}

func (r *repl) cmdInfo() {
	h := r.db.Header()
	fmt.Printf("DB NAME: %s\n", h.DBName)
	fmt.Printf("VERSION: %d\n", h.DBVersion)
	fmt.Printf("IMAGE COUNT: %d\tMAX IMAGES: %d\n", h.NumFiles, h.MaxFiles)
	fmt.Printf("THUMBNAIL: %d x %d\n", h.ResResized[0], h.ResResized[1])
	fmt.Printf("SMALL: %d x %d\n", h.ResResized[2], h.ResResized[3])
}

func (r *repl) cmdGC() {
	answer, err := r.liner.Prompt("Compact database in place? (yes/no): ")
	if err != nil {
		fmt.Println("Cancelled.")
		return
	}

	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "yes" && answer != "y" {
		fmt.Println("Cancelled.")
		return
	}

	if err := r.db.Close(); err != nil {
		fmt.Printf("Error closing database before compaction: %v\n", err)
		return
	}

	codec := imagecodec.New()
	dst := r.path + ".gc"

	gcErr := pictdb.GC(storagefs.NewReal(), r.path, dst, codec)
	if gcErr != nil {
		fmt.Printf("Error: %v\n", gcErr)
	}

	reopened, err := pictdb.Open(storagefs.NewReal(), r.path, pictdb.WithCodec(codec))
	if err != nil {
		fmt.Printf("Error reopening database after compaction: %v\n", err)
		return
	}

	r.db = reopened

	if gcErr != nil {
		return
	}

	fmt.Println("OK: compacted")
}
