// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxonomy classifies records against a fixed, configured set of
// keyword rules, one ordered rule list per classification dimension.
package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/litagent/pkg/types"
)

// Dimension names expected under keyword_rules in the taxonomy file.
const (
	DimDeviceType      = "DeviceType"
	DimMethod          = "Method"
	DimEnablerCategory = "EnablerCategory"
)

// Rule maps a label to the keyword substrings that select it. Rules are
// evaluated in file order and the first label with a matching keyword
// wins, so order is part of the configuration.
type Rule struct {
	Label    string
	Keywords []string
}

// Taxonomy holds the ordered rule lists for the three dimensions. Loaded
// once per run and read-only afterwards.
type Taxonomy struct {
	DeviceType      []Rule
	Method          []Rule
	EnablerCategory []Rule
}

// Load reads and parses a taxonomy YAML file of the form:
//
//	keyword_rules:
//	  DeviceType:
//	    HEMT: ["hemt", "high electron mobility"]
//	    MOSFET: ["mosfet"]
//	  Method: ...
//	  EnablerCategory: ...
//
// A missing file, missing dimension, or empty rule list is an error; the
// caller treats it as fatal at startup.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("taxonomy file %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes taxonomy YAML. The document is walked through yaml.Node
// rather than a Go map: mapping order in the file defines rule precedence
// and a map would lose it.
func Parse(data []byte) (*Taxonomy, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	rules := mapValue(doc.Content[0], "keyword_rules")
	if rules == nil {
		return nil, fmt.Errorf("missing keyword_rules section")
	}

	var t Taxonomy
	var err error
	if t.DeviceType, err = dimensionRules(rules, DimDeviceType); err != nil {
		return nil, err
	}
	if t.Method, err = dimensionRules(rules, DimMethod); err != nil {
		return nil, err
	}
	if t.EnablerCategory, err = dimensionRules(rules, DimEnablerCategory); err != nil {
		return nil, err
	}
	return &t, nil
}

func dimensionRules(rules *yaml.Node, dim string) ([]Rule, error) {
	n := mapValue(rules, dim)
	if n == nil {
		return nil, fmt.Errorf("missing dimension %s", dim)
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("dimension %s is not a mapping", dim)
	}

	var out []Rule
	for i := 0; i+1 < len(n.Content); i += 2 {
		label := n.Content[i].Value
		var keywords []string
		if err := n.Content[i+1].Decode(&keywords); err != nil {
			return nil, fmt.Errorf("dimension %s, label %s: %w", dim, label, err)
		}
		out = append(out, Rule{Label: label, Keywords: keywords})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("dimension %s has no rules", dim)
	}
	return out, nil
}

// mapValue returns the value node for key in a mapping node, or nil.
func mapValue(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// Classify returns the device, method, and enabler labels for a record.
// Each dimension independently scans its rules in order against the
// lower-cased concatenation of title and abstract; the first label with a
// keyword appearing anywhere in the text wins, LabelOther when none match.
func (t *Taxonomy) Classify(title, abstract string) (device, method, enabler string) {
	text := strings.ToLower(title + " " + abstract)
	device = firstMatch(t.DeviceType, text)
	method = firstMatch(t.Method, text)
	enabler = firstMatch(t.EnablerCategory, text)
	return device, method, enabler
}

func firstMatch(rules []Rule, text string) string {
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				return r.Label
			}
		}
	}
	return types.LabelOther
}

// ConfidenceFor derives routing confidence from the three labels: High
// only when every dimension resolved to something other than LabelOther.
func ConfidenceFor(device, method, enabler string) types.Confidence {
	if device != types.LabelOther && method != types.LabelOther && enabler != types.LabelOther {
		return types.ConfidenceHigh
	}
	return types.ConfidenceLow
}
