package export

import (
	"fmt"
	"strconv"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// requiredMetrics are the performance metric types every model card carries.
var requiredMetrics = []string{"threshold", "recall", "precision", "f1-score"}

// ValidateModelCard checks that bom describes a model with the four headline
// metrics, each a number in [0,1]. It returns one message per problem.
func ValidateModelCard(bom *cdx.BOM) []string {
	if bom == nil {
		return []string{"BOM is nil"}
	}
	if bom.Metadata == nil || bom.Metadata.Component == nil {
		return []string{"BOM has no metadata component"}
	}

	var errs []string
	comp := bom.Metadata.Component
	if comp.Name == "" {
		errs = append(errs, "metadata component: name is required")
	}
	if comp.Type != cdx.ComponentTypeMachineLearningModel {
		errs = append(errs, fmt.Sprintf("metadata component %q: type is %q, want %q", comp.Name, comp.Type, cdx.ComponentTypeMachineLearningModel))
	}
	if comp.ModelCard == nil {
		return append(errs, fmt.Sprintf("metadata component %q: missing modelCard", comp.Name))
	}

	for _, metric := range requiredMetrics {
		raw, ok := PerformanceMetric(bom, metric)
		if !ok {
			errs = append(errs, fmt.Sprintf("modelCard: missing performance metric %q", metric))
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("modelCard: metric %q is not a number: %q", metric, raw))
			continue
		}
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Sprintf("modelCard: metric %q out of range [0,1]: %v", metric, v))
		}
	}
	return errs
}
