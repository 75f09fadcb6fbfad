package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/mark3labs/swagen/internal/filter"
	"github.com/mark3labs/swagen/internal/generator"
	"github.com/mark3labs/swagen/internal/logging"
	"github.com/mark3labs/swagen/internal/output"
	"github.com/mark3labs/swagen/internal/profile"
	"github.com/mark3labs/swagen/internal/spec"
	"github.com/mark3labs/swagen/internal/transform"
)

// GenerateConfig captures the inputs of the generate command.
type GenerateConfig struct {
	Profiles []string
	DryRun   bool
	Diff     bool
}

var generateRunner = runGenerate

func newGenerateCmd(o *options) *cobra.Command {
	cfg := &GenerateConfig{}
	cmd := &cobra.Command{
		Use:   "generate [profile...]",
		Short: "Generate code for the configured profiles",
		Long: heredoc.Doc(`
			Generate code for every profile in the configuration, or only for the
			named ones. Profiles marked skip are ignored unless named explicitly.

			A failing profile does not stop the others; the command reports each
			failure and exits non-zero.
		`),
		Example: heredoc.Doc(`
			swagen generate
			swagen generate petstore --diff
			swagen --config api/swagen.toml generate --dry-run
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Profiles = args
			return generateRunner(cmd.Context(), cmd, o, cfg)
		},
	}
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Report what would be written without writing files")
	cmd.Flags().BoolVar(&cfg.Diff, "diff", false, "Print a unified diff against the existing output")
	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, o *options, gc *GenerateConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conf, err := o.loadConfig()
	if err != nil {
		return err
	}

	names := gc.Profiles
	explicit := len(names) > 0
	if !explicit {
		names = conf.Names()
	}
	for _, name := range names {
		if _, ok := conf.Get(name); !ok {
			return unknownProfile(conf, name)
		}
	}

	run := &profileRun{
		registry: o.registry,
		baseDir:  filepath.Dir(conf.Path),
		logger:   o.logger(cmd),
		opts:     output.Options{DryRun: gc.DryRun, Diff: gc.Diff},
	}
	out := cmd.OutOrStdout()
	rep := reporter{w: out}

	var errs []error
	for _, name := range names {
		p, _ := conf.Get(name)
		if p.Skip && !explicit {
			rep.skip(name, "skipped")
			continue
		}
		res, err := run.generate(ctx, name, p)
		if err != nil {
			rep.fail(name, err)
			if !strings.HasPrefix(err.Error(), "["+name+"]") {
				err = fmt.Errorf("[%s] %w", name, err)
			}
			errs = append(errs, err)
			continue
		}
		rep.ok(name, "%s", describe(res, gc.DryRun))
		if res.Diff != "" {
			io.WriteString(out, res.Diff)
		}
	}
	return errors.Join(errs...)
}

func describe(res *output.Result, dryRun bool) string {
	switch {
	case !res.Changed:
		return faint(res.Path + " (unchanged)")
	case dryRun && res.Exists:
		return fmt.Sprintf("would update %s (%d bytes)", res.Path, res.Size)
	case dryRun:
		return fmt.Sprintf("would create %s (%d bytes)", res.Path, res.Size)
	case res.Exists:
		return fmt.Sprintf("updated %s (%d bytes)", res.Path, res.Size)
	default:
		return fmt.Sprintf("created %s (%d bytes)", res.Path, res.Size)
	}
}

// profileRun carries what every profile of one generate invocation shares.
type profileRun struct {
	registry *generator.Registry
	baseDir  string
	logger   logging.Logger
	opts     output.Options
}

// generate runs one profile: load, filter, transform, render and write.
func (r *profileRun) generate(ctx context.Context, name string, p *profile.Profile) (*output.Result, error) {
	if err := p.Verify(name); err != nil {
		return nil, err
	}
	mode, err := r.registry.Mode(p.Generator, p.Mode)
	if err != nil {
		return nil, err
	}
	if err := mode.ValidateProfile(p); err != nil {
		return nil, err
	}
	logger := r.logger.With("profile", name)

	filters, transforms, err := p.Compile(r.baseDir, logger)
	if err != nil {
		return nil, err
	}

	source := p.URL
	if source == "" {
		source = r.resolve(p.File)
	}
	def, err := spec.LoadDefinition(ctx, source, nil,
		spec.WithLogger(logger),
		spec.WithOpenAPI3Downconvert(p.ConvertOpenAPI3),
	)
	if err != nil {
		return nil, err
	}

	if err := filter.New(filters, filter.WithLogger(logger)).FilterDefinition(def); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	merged := generator.MergeTransforms(mode.DefaultTransforms(), transforms)
	if err := transform.New(merged, transform.WithLogger(logger)).TransformDefinition(def); err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	if p.Debug.Definition != "" && !r.opts.DryRun {
		if err := writeDefinition(r.resolve(p.Debug.Definition), def); err != nil {
			return nil, err
		}
	}

	code, err := generator.Generate(mode, def, p)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", mode.Name(), err)
	}
	return output.Write(r.resolve(p.Output), []byte(code), r.opts)
}

// resolve makes a profile path relative to the configuration file.
func (r *profileRun) resolve(path string) string {
	if filepath.IsAbs(path) || r.baseDir == "" {
		return path
	}
	return filepath.Join(r.baseDir, path)
}

func writeDefinition(path string, def *spec.Definition) error {
	data, err := marshalDefinition(def)
	if err != nil {
		return err
	}
	if err := output.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("write debug definition: %w", err)
	}
	return nil
}

func marshalDefinition(def *spec.Definition) ([]byte, error) {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	return append(data, '\n'), nil
}
