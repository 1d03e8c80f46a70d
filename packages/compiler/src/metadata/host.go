package metadata

// HostBindings is a host map split by binding kind. Every map is non-nil.
type HostBindings struct {
	Attributes map[string]string
	Properties map[string]string
	Listeners  map[string]string
}

type hostKeyKind int

const (
	hostKeyAttribute hostKeyKind = iota
	hostKeyProperty
	hostKeyListener
)

// NormalizeHost sorts the entries of a host map:
//
//	"[prop]"  -> Properties["prop"]
//	"(event)" -> Listeners["event"]
//	anything else -> Attributes, key unchanged
//
// A key is only a binding when the whole key is one bracket pair around a non-empty name.
// Unbalanced keys such as "[foo" or "(a)b" are kept as literal attribute names.
func NormalizeHost(host map[string]string) HostBindings {
	result := HostBindings{
		Attributes: map[string]string{},
		Properties: map[string]string{},
		Listeners:  map[string]string{},
	}
	for key, value := range host {
		kind, name := classifyHostKey(key)
		switch kind {
		case hostKeyProperty:
			result.Properties[name] = value
		case hostKeyListener:
			result.Listeners[name] = value
		default:
			result.Attributes[key] = value
		}
	}
	return result
}

// classifyHostKey recognizes ^\[([^\]]+)\]$ and ^\(([^\)]+)\)$
func classifyHostKey(key string) (hostKeyKind, string) {
	if inner, ok := enclosedBy(key, '[', ']'); ok {
		return hostKeyProperty, inner
	}
	if inner, ok := enclosedBy(key, '(', ')'); ok {
		return hostKeyListener, inner
	}
	return hostKeyAttribute, key
}

func enclosedBy(key string, open, close byte) (string, bool) {
	if len(key) < 3 || key[0] != open || key[len(key)-1] != close {
		return "", false
	}
	inner := key[1 : len(key)-1]
	for i := 0; i < len(inner); i++ {
		if inner[i] == close {
			return "", false
		}
	}
	return inner, true
}
