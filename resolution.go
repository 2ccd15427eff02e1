package pictdb

import "fmt"

// ParseResolution maps a case-sensitive resolution name to its resolution
// code, per spec §6: "thumb"/"thumbnail" -> 0, "small" -> 1,
// "orig"/"original" -> 2; anything else is an error.
func ParseResolution(name string) (int, error) {
	switch name {
	case "thumb", "thumbnail":
		return ResThumb, nil
	case "small":
		return ResSmall, nil
	case "orig", "original":
		return ResOrig, nil
	default:
		return 0, fmt.Errorf("%w: unknown resolution %q", ErrInvalidArgument, name)
	}
}

// ResolutionName returns the canonical lowercase name for a resolution
// code, the inverse of ParseResolution for display purposes.
func ResolutionName(resCode int) string {
	switch resCode {
	case ResThumb:
		return "thumb"
	case ResSmall:
		return "small"
	case ResOrig:
		return "orig"
	default:
		return "unknown"
	}
}

// validatePictID enforces spec §4.3 preconditions on an identifier:
// nonempty and at most 127 bytes (one less than the 128-byte fixed field,
// leaving room for the trailing NUL).
func validatePictID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: picture id is empty", ErrInvalidArgument)
	}

	if len(id) > maxPictIDLen-1 {
		return fmt.Errorf("%w: picture id %q longer than %d bytes", ErrInvalidArgument, id, maxPictIDLen-1)
	}

	return nil
}

// FileName composes the conventional on-disk export name for an id at a
// given resolution, e.g. "vacation.thumb.jpg" — used by CLI collaborators
// that write a read result to disk (outside this package's scope, but the
// naming convention is part of the glue layer per spec §2).
func FileName(id string, resCode int) string {
	return fmt.Sprintf("%s.%s.jpg", id, ResolutionName(resCode))
}
