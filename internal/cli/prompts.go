package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mark3labs/swagen/internal/generator"
	"github.com/mark3labs/swagen/internal/profile"
)

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// runInitForm asks for the profile fields init was not given.
func runInitForm(o *options, ic *InitConfig) error {
	gens := o.registry.Generators()
	genOptions := make([]huh.Option[string], 0, len(gens))
	for _, g := range gens {
		genOptions = append(genOptions, huh.NewOption(g, g))
	}
	if ic.Generator == "" && len(gens) > 0 {
		ic.Generator = gens[0]
	}
	if ic.Format == "" {
		ic.Format = string(profile.YAML)
	}
	pkg := ""

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Placeholder("default").
				Validate(required("profile name")).
				Value(&ic.Name),
			huh.NewInput().
				Title("Swagger document").
				Description("A local path or an http(s) URL").
				Placeholder("./swagger.json").
				Validate(required("source")).
				Value(&ic.Source),
			huh.NewSelect[string]().
				Title("Generator").
				Options(genOptions...).
				Value(&ic.Generator),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Mode").
				OptionsFunc(func() []huh.Option[string] {
					return modeOptions(o.registry, ic.Generator)
				}, &ic.Generator).
				Value(&ic.Mode),
			huh.NewInput().
				Title("Output file").
				PlaceholderFunc(func() string {
					return outputPlaceholder(o.registry, ic.Generator)
				}, &ic.Generator).
				Validate(required("output")).
				Value(&ic.Output),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Go package name").
				Validate(required("package name")).
				Value(&pkg),
		).WithHideFunc(func() bool { return ic.Generator != "go" }),
	).WithTheme(huh.ThemeBase16()).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return newUsageError("init: aborted")
		}
		return err
	}
	if pkg != "" {
		if ic.Options == nil {
			ic.Options = map[string]string{}
		}
		ic.Options["package"] = pkg
	}
	return nil
}

func modeOptions(r *generator.Registry, gen string) []huh.Option[string] {
	modes, err := r.Modes(gen)
	if err != nil {
		return nil
	}
	out := make([]huh.Option[string], 0, len(modes))
	for _, m := range modes {
		out = append(out, huh.NewOption(m.Name()+" - "+m.Description(), m.Name()))
	}
	return out
}

func outputPlaceholder(r *generator.Registry, gen string) string {
	m, err := r.Mode(gen, "")
	if err != nil {
		return "./client"
	}
	return "./client." + m.Extension()
}
