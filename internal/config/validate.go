package config

import (
	"fmt"

	"mapforge/internal/diagnostic"
)

// Validate performs structural validation of a session file. It does not
// try to prove type resolvability; that happens once discovery has run.
func Validate(sf *SessionFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if sf == nil {
		res.AddError("session_is_nil", "session file is nil", "", "")

		return res
	}

	if len(sf.Mappers) == 0 {
		res.AddWarning("no_mappers", "session declares no mappers", "", "")
	}

	for i := range sf.Mappers {
		validateMapper(&sf.Mappers[i], res)
	}

	return res
}

func validateMapper(m *Mapper, res *diagnostic.Diagnostics) {
	if m.Name == "" {
		res.AddError("mapper_unnamed", "mapper has no name", "", "")
	}

	switch m.NullValueStrategy {
	case "", "propagate", "map_to_default":
	default:
		res.AddError("bad_null_strategy",
			fmt.Sprintf("unknown null_value_strategy %q", m.NullValueStrategy), m.Name, "")
	}

	seen := map[string]struct{}{}

	for i := range m.Methods {
		d := &m.Methods[i]

		if d.Name == "" {
			res.AddError("method_unnamed", "method has no name", m.Name, "")

			continue
		}

		if _, dup := seen[d.Name]; dup {
			res.AddError("duplicate_method", fmt.Sprintf("duplicate method %q", d.Name), m.Name, d.Name)

			continue
		}

		seen[d.Name] = struct{}{}

		switch d.Callback {
		case "", "before", "after":
		default:
			res.AddError("bad_callback", fmt.Sprintf("unknown callback kind %q", d.Callback), m.Name, d.Name)
		}

		if !d.Factory && d.Source == "" {
			res.AddError("method_no_source", "method has no source type", m.Name, d.Name)
		}

		if d.Target == "" {
			res.AddError("method_no_target", "method has no target type", m.Name, d.Name)
		}

		if d.Factory && d.Update {
			res.AddError("factory_update_conflict", "a factory cannot be an update method", m.Name, d.Name)
		}
	}
}
