// Package pictdb implements a single-file, append-only image repository
// with content-addressed deduplication and lazy multi-resolution
// derivation, as described in SPEC_FULL.md.
package pictdb

import "errors"

// Code is the closed set of result codes the engine can return. Each
// ordinal doubles as the process exit code a CLI collaborator should use
// (spec §6: "nonzero equal to the error kind ordinal").
type Code int

const (
	// CodeOK is returned by CodeOf(nil); it is not an error.
	CodeOK Code = iota
	CodeInvalidArgument
	CodeOutOfMemory
	CodeIO
	CodeFileNotFound
	CodeFullDatabase
	CodeDuplicateID
	CodeInvalidPicID
	CodeCodec
	CodeNotEnoughArguments
	CodeInvalidCommand
	CodeMaxFiles
	CodeResolutions
	CodeInvalidFilename
)

// Sentinel errors forming the closed error taxonomy (C8). Callers compare
// with errors.Is; CodeOf maps any of these, or an error wrapping one of
// them, to its ordinal.
var (
	ErrInvalidArgument    = errors.New("pictdb: invalid argument")
	ErrOutOfMemory        = errors.New("pictdb: out of memory")
	ErrIO                 = errors.New("pictdb: io error")
	ErrFileNotFound       = errors.New("pictdb: file not found")
	ErrFullDatabase       = errors.New("pictdb: database full")
	ErrDuplicateID        = errors.New("pictdb: duplicate id")
	ErrInvalidPicID       = errors.New("pictdb: invalid picture id")
	ErrCodec              = errors.New("pictdb: image codec error")
	ErrNotEnoughArguments = errors.New("pictdb: not enough arguments")
	ErrInvalidCommand     = errors.New("pictdb: invalid command")
	ErrMaxFiles           = errors.New("pictdb: max_files out of bounds")
	ErrResolutions        = errors.New("pictdb: resolution out of bounds")
	ErrInvalidFilename    = errors.New("pictdb: invalid filename")
)

// codeTable pairs each sentinel with its ordinal, in Code const order.
var codeTable = []struct {
	err  error
	code Code
}{
	{ErrInvalidArgument, CodeInvalidArgument},
	{ErrOutOfMemory, CodeOutOfMemory},
	{ErrIO, CodeIO},
	{ErrFileNotFound, CodeFileNotFound},
	{ErrFullDatabase, CodeFullDatabase},
	{ErrDuplicateID, CodeDuplicateID},
	{ErrInvalidPicID, CodeInvalidPicID},
	{ErrCodec, CodeCodec},
	{ErrNotEnoughArguments, CodeNotEnoughArguments},
	{ErrInvalidCommand, CodeInvalidCommand},
	{ErrMaxFiles, CodeMaxFiles},
	{ErrResolutions, CodeResolutions},
	{ErrInvalidFilename, CodeInvalidFilename},
}

// CodeOf maps err to its Code ordinal via errors.Is against the closed
// taxonomy. Returns CodeOK for a nil error and CodeIO for an error outside
// the taxonomy.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}

	for _, entry := range codeTable {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}

	return CodeIO
}
