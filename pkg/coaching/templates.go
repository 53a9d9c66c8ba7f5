package coaching

import (
	_ "embed"
)

//go:embed templates/person_focused.tmpl
var personFocusedTemplate string

//go:embed templates/self_reflection.tmpl
var selfReflectionTemplate string

//go:embed templates/general_strategic.tmpl
var generalStrategicTemplate string

// Templates holds the three base templates as explicit immutable
// configuration, so tests can substitute fixtures without touching
// shared state.
type Templates struct {
	PersonFocused    string
	SelfReflection   string
	GeneralStrategic string
}

// DefaultTemplates returns the embedded production templates.
func DefaultTemplates() Templates {
	return Templates{
		PersonFocused:    personFocusedTemplate,
		SelfReflection:   selfReflectionTemplate,
		GeneralStrategic: generalStrategicTemplate,
	}
}
