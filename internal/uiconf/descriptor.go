package uiconf

import "strings"

// PropType is the declared type of a control property.
type PropType int

const (
	TypeBool PropType = iota
	TypeInt
	TypeFloat
	TypeString
)

// String returns a human-readable representation of the type.
func (t PropType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// PropertySpec declares one mutable property of a control: its expected
// type and, for numeric properties, an optional allowed range.
type PropertySpec struct {
	Type    PropType
	Minimum *float64
	Maximum *float64
}

// SetterFunc mutates a control property. It is supplied by the surrounding
// GUI; the override pass holds no control state of its own. The value passed
// has already been coerced to the declared type (bool, int, float64, or
// string) and clamped.
type SetterFunc func(property string, value any)

// Descriptor describes one UI control as registered by the surrounding GUI.
// The resolver consumes descriptors read-only.
type Descriptor struct {
	// CanonicalName is the control's display label (e.g. "Sampling method").
	CanonicalName string

	// Aliases are alternative names the override document may use.
	Aliases []string

	// Properties maps lower-case property names to their declared specs.
	Properties map[string]PropertySpec

	// Set applies a validated value to the live control. A nil Set makes
	// the descriptor validate-only (used by the CLI linter).
	Set SetterFunc
}

// Registry holds the control descriptors for each tab. It is built by the
// surrounding GUI before the override pass runs and is read-only afterwards.
type Registry struct {
	tabs map[string][]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tabs: make(map[string][]*Descriptor)}
}

// Register adds a control descriptor under a tab. Registration order is
// preserved; earlier descriptors win resolution ties.
func (r *Registry) Register(tabID string, d *Descriptor) {
	key := strings.ToLower(strings.TrimSpace(tabID))
	r.tabs[key] = append(r.tabs[key], d)
}

// Tab returns the descriptors registered under a tab, or nil.
func (r *Registry) Tab(tabID string) []*Descriptor {
	return r.tabs[strings.ToLower(strings.TrimSpace(tabID))]
}

// Tabs returns the registered tab identifiers (unordered).
func (r *Registry) Tabs() []string {
	out := make([]string, 0, len(r.tabs))
	for tab := range r.tabs {
		out = append(out, tab)
	}
	return out
}
