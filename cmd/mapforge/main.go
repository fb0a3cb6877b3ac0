// Package main provides the CLI entrypoint for mapforge.
//
// mapforge is a type-directed mapping codegen tool that:
//   - Loads a YAML session declaring mapper units and abstract methods
//   - Discovers the referenced Go types (go/types via go/packages)
//   - Resolves every method into an assignment tree, forging container
//     helper methods on demand
//   - Generates mapper functions, plus an optional reviewable plan
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"mapforge/internal/config"
	"mapforge/internal/convert"
	"mapforge/internal/descriptor"
	"mapforge/internal/diagnostic"
	"mapforge/internal/discover"
	"mapforge/internal/emit"
	"mapforge/internal/index"
	"mapforge/internal/resolve"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "mapforge:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("mapforge", flag.ContinueOnError)

	var (
		cfgPath = fs.String("config", "mapforge.yaml", "session file to load")
		outDir  = fs.String("out", "./generated", "output directory for generated code")
		planOut = fs.String("plan", "", "optional path for the YAML resolution plan")
		debug   = fs.Bool("debug", false, "dump resolved plans to stderr")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}

	sf, err := config.LoadFile(*cfgPath)
	if err != nil {
		return err
	}

	diags := config.Validate(sf)
	if diags.HasErrors() {
		return diags.Error()
	}

	lookup, err := buildLookup(sf.Packages)
	if err != nil {
		return err
	}

	var (
		files []emit.GeneratedFile
		all   diagnostic.Diagnostics
		plans bytes.Buffer
	)

	all.Merge(*diags)

	for i := range sf.Mappers {
		mp := &sf.Mappers[i]

		res, err := runMapper(mp, lookup)
		if err != nil {
			return err
		}

		all.Merge(res.Diags)

		if *debug {
			spew.Fdump(os.Stderr, resolve.ExportPlan(res))
		}

		if *planOut != "" {
			doc, err := resolve.ExportPlanYAML(res)
			if err != nil {
				return fmt.Errorf("exporting plan for %s: %w", mp.Name, err)
			}

			fmt.Fprintf(&plans, "---\n# mapper: %s\n%s", mp.Name, doc)
		}

		emitter := emit.New(emit.Config{
			PackageName: mp.Package,
			OutputDir:   *outDir,
			Comments:    true,
		})

		file, err := emitter.Emit(mapperFilename(mp.Name), res.Bodies())
		if err != nil {
			return fmt.Errorf("emitting mapper %s: %w", mp.Name, err)
		}

		files = append(files, *file)
	}

	if err := emit.WriteFiles(files, *outDir); err != nil {
		return err
	}

	if *planOut != "" {
		if err := os.WriteFile(*planOut, plans.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing plan: %w", err)
		}
	}

	for _, w := range all.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.String())
	}

	if all.HasErrors() {
		return all.Error()
	}

	return nil
}

// runMapper resolves one mapper unit: registers its declared methods, builds
// the body of every generated one, then drains the forge queue.
func runMapper(mp *config.Mapper, lookup config.TypeLookup) (*resolve.Resolver, error) {
	ix := index.New()
	res := resolve.NewResolver(convert.NewRegistry(), ix)

	null := resolve.NullPropagate
	if mp.NullValueStrategy == "map_to_default" {
		null = resolve.NullMapToDefault
	}

	type declared struct {
		def config.MethodDef
		m   *descriptor.Method
	}

	var methods []declared

	for _, def := range mp.Methods {
		m, err := def.Build(lookup)
		if err != nil {
			return nil, fmt.Errorf("mapper %s: %w", mp.Name, err)
		}

		ix.Register(m)
		methods = append(methods, declared{def: def, m: m})
	}

	for _, d := range methods {
		// Callbacks and factories have user-provided bodies.
		if d.m.Callback != descriptor.CallbackNone || len(d.m.Sources) == 0 {
			continue
		}

		res.BuildMethod(d.m, resolve.Context{
			Qualifiers:     d.def.Qualifiers,
			TargetProperty: d.def.TargetProperty,
			Null:           null,
			Format:         mp.DateFormat,
		})
	}

	res.Drain()
	res.Finish()

	return res, nil
}

// buildLookup loads the session's packages and returns the type lookup the
// config layer resolves named type expressions through.
func buildLookup(patterns []string) (config.TypeLookup, error) {
	if len(patterns) == 0 {
		return func(string) *descriptor.Type { return nil }, nil
	}

	world, err := discover.NewLoader().Load(patterns...)
	if err != nil {
		return nil, err
	}

	return world.Lookup, nil
}

func mapperFilename(name string) string {
	return strings.ToLower(name) + "_mapper.go"
}
