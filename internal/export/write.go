// Package export writes a dashboard result to disk as a PNG chart or a
// CycloneDX model card.
package export

import (
	"fmt"
	"os"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
)

// Options controls Write.
type Options struct {
	// Format is png, json, xml or auto (from the extension).
	Format string
	// SpecVersion selects the CycloneDX version for json/xml output.
	SpecVersion string
	ModelName   string
	Chart       ChartOptions
}

// Write renders vm to outputPath and returns the format used.
func Write(vm dashboard.ViewModel, outputPath string, opts Options) (Format, error) {
	format, err := ResolveFormat(opts.Format, outputPath)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatPNG:
		f, err := os.Create(outputPath)
		if err != nil {
			return "", err
		}
		defer f.Close()
		if err := RenderCurvePNG(f, vm, opts.Chart); err != nil {
			return "", err
		}
	default:
		bom, err := BuildModelCard(vm, ModelCardOptions{ModelName: opts.ModelName})
		if err != nil {
			return "", err
		}
		if errs := ValidateModelCard(bom); len(errs) > 0 {
			return "", fmt.Errorf("invalid model card: %s", strings.Join(errs, "; "))
		}
		if err := WriteBOM(bom, outputPath, format, opts.SpecVersion); err != nil {
			return "", err
		}
	}
	logf(vm.CycleID, "wrote %s (%s)", outputPath, format)
	return format, nil
}

// WriteBOM encodes bom to outputPath as json or xml.
func WriteBOM(bom *cdx.BOM, outputPath string, format Format, spec string) error {
	var fileFmt cdx.BOMFileFormat
	switch format {
	case FormatJSON:
		fileFmt = cdx.BOMFileFormatJSON
	case FormatXML:
		fileFmt = cdx.BOMFileFormatXML
	default:
		return fmt.Errorf("unsupported BOM format: %q", format)
	}

	sv, err := ParseSpecVersion(spec)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := cdx.NewBOMEncoder(f, fileFmt)
	encoder.SetPretty(true)
	return encoder.EncodeVersion(bom, sv)
}

// ReadBOM decodes a model card written by WriteBOM.
func ReadBOM(path string, format Format) (*cdx.BOM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fileFmt := cdx.BOMFileFormatJSON
	if format == FormatXML {
		fileFmt = cdx.BOMFileFormatXML
	}
	bom := new(cdx.BOM)
	if err := cdx.NewBOMDecoder(f, fileFmt).Decode(bom); err != nil {
		return nil, err
	}
	return bom, nil
}
