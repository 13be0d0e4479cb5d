package transform

import "strings"

// EPMProject is the legacy project whose texts live in description2.
const EPMProject = "EPM"

// Variant is one translation text and the context it belongs to.
type Variant struct {
	Text string
	EPM  bool
}

// Descriptions decides which translations an object or monument row yields.
// For the EPM project only description2 is used, in the project context.
// Elsewhere description goes to the project context and description2, when
// present and the EPM context exists, to the EPM context.
func Descriptions(projectID, description, description2 string, epmContext bool) []Variant {
	d1 := HTMLToText(description)
	d2 := HTMLToText(description2)
	if strings.EqualFold(strings.TrimSpace(projectID), EPMProject) {
		if d2 == "" {
			return nil
		}
		return []Variant{{Text: d2}}
	}
	var out []Variant
	if d1 != "" {
		out = append(out, Variant{Text: d1})
	}
	if d2 != "" && epmContext {
		out = append(out, Variant{Text: d2, EPM: true})
	}
	return out
}
