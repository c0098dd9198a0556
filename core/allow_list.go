package core

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// AllowList accepts phone numbers written either as strings or as bare
// numbers in YAML; entries are kept as their literal text.
type AllowList []string

func (l *AllowList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = AllowList{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make(AllowList, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("core: allowFrom entries must be scalars (line %d)", item.Line)
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("core: allowFrom must be a list (line %d)", value.Line)
	}
}

// Strings returns trimmed, non-empty entries.
func (l AllowList) Strings() []string {
	out := make([]string, 0, len(l))
	for _, entry := range l {
		if entry = strings.TrimSpace(entry); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
