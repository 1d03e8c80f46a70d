package css

import (
	"regexp"
)

var urlWithSchemaRegexp = regexp.MustCompile(`^([^:/?#]+):`)

// IsStyleURLResolvable reports whether a component style URL can be resolved relative to the component.
// Empty and absolute paths cannot; of the URLs with a scheme only package: and asset: can.
func IsStyleURLResolvable(url string) bool {
	if url == "" || url[0] == '/' {
		return false
	}
	schemeMatch := urlWithSchemaRegexp.FindStringSubmatch(url)
	return schemeMatch == nil || schemeMatch[1] == "package" || schemeMatch[1] == "asset"
}
