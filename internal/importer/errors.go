// Package importer turns external data sources into entities of an import
// session. Each importer validates the raw records and feeds primitive
// values into the catalog; the entities reject anything inconsistent.
package importer

import (
	"errors"
	"fmt"
)

// ErrImport marks every failure reported by an importer.
var ErrImport = errors.New("import failed")

func importErrorf(cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrImport, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrImport, msg, cause)
}
