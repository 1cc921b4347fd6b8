package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/savings-projector/internal/domain"
)

// lookup resolves a format name, enriching the error with the available choices.
func lookup(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// Render writes the report in the named format to w.
func Render(w io.Writer, report *domain.ProjectionReport, format string) error {
	f, err := lookup(format)
	if err != nil {
		return err
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("format %s: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes the report to filename in the named format and returns
// the path written. An empty filename yields a timestamped file in the working directory.
func GenerateReport(report *domain.ProjectionReport, format, filename string) (string, error) {
	f, err := lookup(format)
	if err != nil {
		return "", err
	}
	return WriteFormatted(f, report, filename)
}
