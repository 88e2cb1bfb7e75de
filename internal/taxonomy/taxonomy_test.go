// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/litagent/pkg/types"
)

const sampleTaxonomyYAML = `
keyword_rules:
  DeviceType:
    HEMT: ["hemt", "high electron mobility"]
    MOSFET: ["mosfet"]
    Diode: ["schottky", "diode"]
  Method:
    Experiment: ["measured", "fabricated"]
    Simulation: ["tcad", "simulation"]
  EnablerCategory:
    Material: ["gan", "algan"]
    Packaging: ["package", "module"]
`

func mustParse(t *testing.T, data string) *Taxonomy {
	t.Helper()
	tax, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return tax
}

func TestParsePreservesRuleOrder(t *testing.T) {
	tax := mustParse(t, sampleTaxonomyYAML)

	gotLabels := make([]string, len(tax.DeviceType))
	for i, r := range tax.DeviceType {
		gotLabels[i] = r.Label
	}
	want := []string{"HEMT", "MOSFET", "Diode"}
	if strings.Join(gotLabels, ",") != strings.Join(want, ",") {
		t.Errorf("DeviceType rule order = %v, want %v", gotLabels, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty document", ""},
		{"missing keyword_rules", "taxonomy: {}"},
		{"missing dimension", "keyword_rules:\n  DeviceType:\n    HEMT: [\"hemt\"]\n"},
		{"dimension not a mapping", "keyword_rules:\n  DeviceType: [\"hemt\"]\n  Method: {}\n  EnablerCategory: {}\n"},
		{"empty dimension", "keyword_rules:\n  DeviceType: {}\n  Method: {}\n  EnablerCategory: {}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of missing file expected error")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	if err := os.WriteFile(path, []byte(sampleTaxonomyYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	tax, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(tax.Method) != 2 {
		t.Errorf("Method rules = %d, want 2", len(tax.Method))
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	tax := mustParse(t, sampleTaxonomyYAML)

	// Text contains keywords for both HEMT and MOSFET; HEMT is listed
	// first and must win.
	device, _, _ := tax.Classify("A HEMT and MOSFET comparison", "")
	if device != "HEMT" {
		t.Errorf("device = %q, want HEMT", device)
	}
}

func TestClassify(t *testing.T) {
	tax := mustParse(t, sampleTaxonomyYAML)

	tests := []struct {
		name                          string
		title, abstract               string
		wantDevice, wantMethod, wantEnabler string
	}{
		{
			"all resolved",
			"Fabricated GaN HEMT", "measured output power",
			"HEMT", "Experiment", "Material",
		},
		{
			"abstract contributes",
			"A power device", "tcad simulation of a mosfet in gan",
			"MOSFET", "Simulation", "Material",
		},
		{
			"case-insensitive match",
			"GAN HEMT", "MEASURED",
			"HEMT", "Experiment", "Material",
		},
		{
			"nothing matches",
			"Graph neural networks", "for molecule design",
			types.LabelOther, types.LabelOther, types.LabelOther,
		},
		{
			"partial resolution",
			"A HEMT survey", "",
			"HEMT", types.LabelOther, types.LabelOther,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device, method, enabler := tax.Classify(tt.title, tt.abstract)
			if device != tt.wantDevice || method != tt.wantMethod || enabler != tt.wantEnabler {
				t.Errorf("Classify() = (%q, %q, %q), want (%q, %q, %q)",
					device, method, enabler, tt.wantDevice, tt.wantMethod, tt.wantEnabler)
			}
		})
	}
}

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		name                    string
		device, method, enabler string
		want                    types.Confidence
	}{
		{"all resolved", "HEMT", "Experiment", "Material", types.ConfidenceHigh},
		{"device other", types.LabelOther, "Experiment", "Material", types.ConfidenceLow},
		{"method other", "HEMT", types.LabelOther, "Material", types.ConfidenceLow},
		{"enabler other", "HEMT", "Experiment", types.LabelOther, types.ConfidenceLow},
		{"all other", types.LabelOther, types.LabelOther, types.LabelOther, types.ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConfidenceFor(tt.device, tt.method, tt.enabler)
			if got != tt.want {
				t.Errorf("ConfidenceFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
