// Package config loads YAML session definitions: the mappers and methods a
// resolution session starts from, plus the session-wide selection and
// null-handling options.
package config

// SessionFile is the root of a session definition.
type SessionFile struct {
	// Version of the file format.
	Version string `yaml:"version"`
	// Packages are Go package patterns handed to type discovery.
	Packages []string `yaml:"packages"`
	// Mappers declare the mapper units to generate.
	Mappers []Mapper `yaml:"mappers"`
}

// Mapper declares one mapper unit: a named set of abstract methods.
type Mapper struct {
	// Name of the mapper; also names the generated file.
	Name string `yaml:"name"`
	// Package is the Go package name of the generated output.
	Package string `yaml:"package"`
	// Methods are the abstract mapping methods to resolve.
	Methods []MethodDef `yaml:"methods"`
	// NullValueStrategy is "propagate" (default) or "map_to_default".
	NullValueStrategy string `yaml:"null_value_strategy"`
	// DateFormat is an optional layout pattern for date conversions.
	DateFormat string `yaml:"date_format"`
}

// MethodDef declares one abstract method signature.
type MethodDef struct {
	// Name of the method in generated source.
	Name string `yaml:"name"`
	// Source and Target are type expressions: "pkg.Name", "[]T",
	// "map[K]V", "set[T]".
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	// Update marks a method that fills an existing target value.
	Update bool `yaml:"update,omitempty"`
	// Qualifiers narrow candidate selection when this method is used as a
	// mapping candidate by other methods.
	Qualifiers []string `yaml:"qualifiers,omitempty"`
	// TargetProperty is the property name hint for tie-breaking.
	TargetProperty string `yaml:"target_property,omitempty"`
	// Callback is "" (regular), "before" or "after".
	Callback string `yaml:"callback,omitempty"`
	// Errors lists the error kinds the (user-provided) body can raise.
	Errors []string `yaml:"errors,omitempty"`
	// Factory marks a zero-argument construction method for Target.
	Factory bool `yaml:"factory,omitempty"`
}
