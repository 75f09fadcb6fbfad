package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mark3labs/swagen/internal/generator"
	"github.com/mark3labs/swagen/internal/generator/builtin"
	"github.com/mark3labs/swagen/internal/logging"
	"github.com/mark3labs/swagen/internal/profile"
)

// Version is set at build time with -ldflags "-X".
var Version = "dev"

// Execute runs the swagen CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// options are shared by every subcommand.
type options struct {
	configPath string
	verbose    bool
	registry   *generator.Registry
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	return newRootCmd(builtin.Registry())
}

func newRootCmd(registry *generator.Registry) *cobra.Command {
	o := &options{registry: registry}
	cmd := &cobra.Command{
		Use:   "swagen",
		Short: "Generate typed API clients from Swagger 2.0 documents",
		Long: heredoc.Doc(`
			swagen turns a Swagger/OpenAPI 2.0 document into client source code.

			Each profile in swagen.yaml (or .yml, .toml, .json) names an input
			document, a generator and optional filters and naming transforms.
			Run 'swagen init' to create one.
		`),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "Config file path (YAML, TOML or JSON)")
	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable verbose logging output")

	cmd.AddCommand(
		newGenerateCmd(o),
		newDefinitionCmd(o),
		newInitCmd(o),
		newListCmd(o),
		newModesCmd(o),
		newRenameCmd(o),
		newRemoveCmd(o),
		newVersionCmd(),
	)

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	flagErr := func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	}
	cmd.SetFlagErrorFunc(flagErr)
	cmd.SetGlobalNormalizationFunc(normalizeFlag)
	for _, sub := range cmd.Commands() {
		sub.SetFlagErrorFunc(flagErr)
	}
	return cmd
}

// normalizeFlag accepts underscores and camel case in flag names, so
// --no_input and --convertOpenAPI3 work like their dashed forms.
func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "convertOpenAPI3" {
		return "convert-openapi3"
	}
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func (o *options) logger(cmd *cobra.Command) logging.Logger {
	return logging.NewText(cmd.ErrOrStderr(), o.verbose)
}

// loadConfig reads --config, or the first configuration file found in the
// working directory.
func (o *options) loadConfig() (*profile.Config, error) {
	path := strings.TrimSpace(o.configPath)
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		if path, err = profile.Find(wd); err != nil {
			return nil, usageErrorf("%w", err)
		}
	}
	return profile.Load(path)
}

// configTarget is where init writes: --config, an existing file in the
// working directory, or swagen.<format>.
func (o *options) configTarget(format profile.Format) string {
	if path := strings.TrimSpace(o.configPath); path != "" {
		return path
	}
	if wd, err := os.Getwd(); err == nil {
		if path, err := profile.Find(wd); err == nil {
			return path
		}
	}
	return "swagen." + string(format)
}

// unknownProfile builds the usage error for a missing profile name,
// suggesting the closest existing names.
func unknownProfile(cfg *profile.Config, name string) error {
	msg := fmt.Sprintf("cannot find a profile named '%s' in %s", name, cfg.Path)
	if s := suggest(name, cfg.Names()); len(s) > 0 {
		msg += "\n\nDid you mean this?\n\t" + strings.Join(s, "\n\t")
	}
	return newUsageError(msg)
}

func suggest(name string, candidates []string) []string {
	matches := fuzzy.Find(name, candidates)
	out := make([]string, 0, 3)
	for i, m := range matches {
		if i == 3 {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
