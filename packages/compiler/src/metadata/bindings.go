package metadata

import (
	"ngc-metadata/packages/compiler/src/util"
)

// NormalizeBindingList turns "dirProp: elProp" entries into a dirProp -> elProp map.
// An entry without a colon maps to itself. Later entries overwrite earlier ones with the same key.
func NormalizeBindingList(bindings []string) map[string]string {
	result := make(map[string]string, len(bindings))
	for _, bindConfig := range bindings {
		parts := util.SplitAtColon(bindConfig, []string{bindConfig, bindConfig})
		result[parts[0]] = parts[1]
	}
	return result
}
