package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/spec"
)

// InitConfig captures the options for the init command.
type InitConfig struct {
	Name      string
	Source    string
	Output    string
	Generator string
	Mode      string
	Format    string
	Options   map[string]string
	Force     bool
	NoInput   bool
}

// promptProfile fills the missing fields of an InitConfig interactively.
var promptProfile = runInitForm

func newInitCmd(o *options) *cobra.Command {
	ic := &InitConfig{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Add a profile to the swagen configuration",
		Long: heredoc.Doc(`
			Add a profile to the configuration file, creating the file when it does
			not exist. Missing values are asked for interactively unless --no-input
			is set.
		`),
		Example: heredoc.Doc(`
			swagen init
			swagen init --name petstore --source petstore.json --output src/petstore.ts --generator typescript
			swagen init --name api --source https://example.com/swagger.json --output api/client.go --generator go --option package=api
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, o, ic)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&ic.Name, "name", "default", "Profile name")
	flags.StringVar(&ic.Source, "source", "", "Path or URL of the Swagger document")
	flags.StringVar(&ic.Output, "output", "", "Path of the generated file")
	flags.StringVar(&ic.Generator, "generator", "", "Generator name (see 'swagen list --details')")
	flags.StringVar(&ic.Mode, "mode", "", "Generator mode; defaults to the generator's first mode")
	flags.StringVar(&ic.Format, "format", string(profile.YAML), "Format of a new configuration file (yaml|toml|json)")
	flags.StringToStringVar(&ic.Options, "option", nil, "Generator option as key=value (repeatable)")
	flags.BoolVar(&ic.Force, "force", false, "Replace an existing profile with the same name")
	flags.BoolVar(&ic.NoInput, "no-input", false, "Fail instead of prompting for missing values")
	return cmd
}

func runInit(cmd *cobra.Command, o *options, ic *InitConfig) error {
	if ic.Source == "" || ic.Output == "" || ic.Generator == "" {
		if ic.NoInput {
			return newUsageError("init: --source, --output and --generator are required with --no-input")
		}
		if err := promptProfile(o, ic); err != nil {
			return err
		}
	}

	format := profile.Format(strings.ToLower(strings.TrimSpace(ic.Format)))
	switch format {
	case profile.YAML, profile.TOML, profile.JSON:
	default:
		return usageErrorf("init: unsupported --format %q (allowed: yaml, toml, json)", ic.Format)
	}

	path := o.configTarget(format)
	conf, err := profile.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		conf = profile.New(path)
	case err != nil:
		return err
	}

	name := strings.TrimSpace(ic.Name)
	if name == "" {
		return newUsageError("init: the profile name cannot be empty")
	}
	if _, exists := conf.Get(name); exists && !ic.Force {
		return usageErrorf("init: a profile named '%s' already exists in %s (use --force to replace it)", name, path)
	}

	source := strings.TrimSpace(ic.Source)
	p := &profile.Profile{
		Output:    strings.TrimSpace(ic.Output),
		Generator: strings.ToLower(strings.TrimSpace(ic.Generator)),
	}
	if spec.IsURL(source) {
		p.URL = source
	} else {
		p.File = source
	}
	if len(ic.Options) > 0 {
		p.Options = map[string]any{}
		for k, v := range ic.Options {
			p.Options[k] = v
		}
	}
	if err := p.Verify(name); err != nil {
		return usageErrorf("%w", err)
	}
	mode, err := o.registry.Mode(p.Generator, ic.Mode)
	if err != nil {
		return usageErrorf("%w", err)
	}
	p.Mode = mode.Name()
	if err := mode.ValidateProfile(p); err != nil {
		return usageErrorf("%w", err)
	}

	conf.Set(name, p)
	if err := conf.Save(); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	reporter{w: cmd.OutOrStdout()}.ok(name, "saved to %s", conf.Path)
	return nil
}
