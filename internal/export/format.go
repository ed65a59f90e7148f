package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an export file format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// ResolveFormat picks the format from an explicit value or, for "auto" and
// "", from the output path's extension. The extension must match the format.
func ResolveFormat(format string, outputPath string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(outputPath))

	actual := strings.ToLower(strings.TrimSpace(format))
	switch actual {
	case "", "auto":
		switch ext {
		case ".png":
			actual = "png"
		case ".xml":
			actual = "xml"
		case ".json":
			actual = "json"
		default:
			return "", fmt.Errorf("cannot infer export format from %q; use --format", outputPath)
		}
	case "png", "json", "xml":
	default:
		return "", fmt.Errorf("unsupported export format: %q", format)
	}

	if ext != "."+actual {
		return "", fmt.Errorf("output path extension %q does not match format %q", ext, actual)
	}
	return Format(actual), nil
}
