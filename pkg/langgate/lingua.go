package langgate

import (
	"fmt"
	"strings"

	lingua "github.com/pemistahl/lingua-go"

	"github.com/doctract/doctract/pkg/interfaces"
)

// linguaDetector wraps the lingua language detector behind the opaque
// LanguageDetector interface
type linguaDetector struct {
	detector lingua.LanguageDetector
}

// NewLinguaDetector builds a detector over all supported languages. The
// model load is not cheap, so build it once per run and only when the gate
// is enabled.
func NewLinguaDetector() interfaces.LanguageDetector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()
	return &linguaDetector{detector: detector}
}

// Detect returns the top-ranked language guess as a lowercase ISO 639-1
// code with its confidence
func (d *linguaDetector) Detect(text string) (string, float64, error) {
	values := d.detector.ComputeLanguageConfidenceValues(text)
	if len(values) == 0 {
		return "", 0, fmt.Errorf("no language detected")
	}

	top := values[0]
	code := strings.ToLower(top.Language().IsoCode639_1().String())
	return code, top.Value(), nil
}
