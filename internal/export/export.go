package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/pagepace/internal/app"
)

type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown format %q (want table|csv|json)", s)
}

// Write renders resp in a machine-readable format. Table output belongs to
// the CLI formatter and is rejected here.
func Write(out io.Writer, format Format, resp *app.StatusResponse) error {
	switch format {
	case FormatCSV:
		return WriteStatusCSV(out, resp)
	case FormatJSON:
		return WriteStatusJSON(out, resp)
	}
	return fmt.Errorf("format %q is not an export format", format)
}

// ToFile writes resp to path, replacing any existing file.
func ToFile(path string, format Format, resp *app.StatusResponse) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s file: %w", format, err)
	}
	if err := Write(f, format, resp); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
