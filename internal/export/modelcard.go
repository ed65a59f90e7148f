package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/idlab-discover/fraudboard-cli/internal/dashboard"
)

const (
	DefaultToolVendor = "idlab-discover"
	DefaultToolName   = "fraudboard-cli"
	DefaultModelName  = "fraud-model"
)

// Property names written on the model component.
const (
	PropStatus  = "fraudboard:status"
	PropWarning = "fraudboard:warning"
	PropCycleID = "fraudboard:cycleId"
	PropCurve   = "fraudboard:prCurvePoints"
)

// ModelCardOptions tunes BuildModelCard.
type ModelCardOptions struct {
	ModelName string
	Now       func() time.Time
}

// BuildModelCard describes the dashboard result as a CycloneDX BOM whose
// metadata component is the evaluated model. The four headline metrics go
// into the model card's quantitative analysis.
func BuildModelCard(vm dashboard.ViewModel, opts ModelCardOptions) (*cdx.BOM, error) {
	if vm.Metrics == nil {
		return nil, errors.New("nothing to export: no metrics available")
	}
	name := strings.TrimSpace(opts.ModelName)
	if name == "" {
		name = DefaultModelName
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := vm.Metrics
	metrics := []cdx.MLPerformanceMetric{
		{Type: "threshold", Value: formatFloat(m.BestThreshold)},
		{Type: "recall", Value: formatFloat(m.Recall)},
		{Type: "precision", Value: formatFloat(m.Precision)},
		{Type: "f1-score", Value: formatFloat(m.F1Score)},
	}

	props := []cdx.Property{
		{Name: PropStatus, Value: string(vm.Status)},
		{Name: PropCurve, Value: strconv.Itoa(len(vm.Curve))},
	}
	if vm.CycleID != "" {
		props = append(props, cdx.Property{Name: PropCycleID, Value: vm.CycleID})
	}
	if vm.Warning != "" {
		props = append(props, cdx.Property{Name: PropWarning, Value: vm.Warning})
	}

	comp := &cdx.Component{
		BOMRef: "urn:uuid:" + uuid.NewString(),
		Type:   cdx.ComponentTypeMachineLearningModel,
		Name:   name,
		ModelCard: &cdx.MLModelCard{
			ModelParameters: &cdx.MLModelParameters{Task: "binary-classification"},
			QuantitativeAnalysis: &cdx.MLQuantitativeAnalysis{
				PerformanceMetrics: &metrics,
			},
		},
		Properties: &props,
	}

	bom := cdx.NewBOM()
	bom.SerialNumber = "urn:uuid:" + uuid.NewString()
	bom.Metadata = &cdx.Metadata{
		Timestamp: now().Format(time.RFC3339),
		Component: comp,
		Tools: &cdx.ToolsChoice{
			Components: &[]cdx.Component{{
				Type:         cdx.ComponentTypeApplication,
				Manufacturer: &cdx.OrganizationalEntity{Name: DefaultToolVendor},
				Name:         DefaultToolName,
				Version:      ToolVersion(),
			}},
		},
	}
	logf(vm.CycleID, "model card built for %s (%s)", name, vm.Status)
	return bom, nil
}

// PerformanceMetric returns the value of the named metric from a model card BOM.
func PerformanceMetric(bom *cdx.BOM, metricType string) (string, bool) {
	if bom == nil || bom.Metadata == nil || bom.Metadata.Component == nil {
		return "", false
	}
	card := bom.Metadata.Component.ModelCard
	if card == nil || card.QuantitativeAnalysis == nil || card.QuantitativeAnalysis.PerformanceMetrics == nil {
		return "", false
	}
	for _, pm := range *card.QuantitativeAnalysis.PerformanceMetrics {
		if pm.Type == metricType {
			return pm.Value, true
		}
	}
	return "", false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseSpecVersion parses a spec version string to a CycloneDX SpecVersion.
// Model cards need 1.5 or later.
func ParseSpecVersion(s string) (cdx.SpecVersion, error) {
	switch strings.TrimSpace(s) {
	case "":
		return cdx.SpecVersion1_6, nil
	case "1.5":
		return cdx.SpecVersion1_5, nil
	case "1.6":
		return cdx.SpecVersion1_6, nil
	default:
		return cdx.SpecVersion1_6, fmt.Errorf("unsupported CycloneDX spec version for model cards: %q", s)
	}
}
