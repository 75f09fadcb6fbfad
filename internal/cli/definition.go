package cli

import (
	"context"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/mark3labs/swagen/internal/output"
	"github.com/mark3labs/swagen/internal/spec"
)

// DefinitionConfig captures the inputs of the definition command.
type DefinitionConfig struct {
	File            string
	URL             string
	Output          string
	ConvertOpenAPI3 bool
}

func newDefinitionCmd(o *options) *cobra.Command {
	dc := &DefinitionConfig{}
	cmd := &cobra.Command{
		Use:   "definition",
		Short: "Print the parsed definition of a Swagger document as JSON",
		Long: heredoc.Doc(`
			Parse a Swagger 2.0 document and print the language-neutral definition
			that generators receive, before any filter or transform is applied.
		`),
		Example: heredoc.Doc(`
			swagen definition --file petstore.json
			swagen definition --url https://petstore.swagger.io/v2/swagger.json --output petstore.definition.json
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefinition(cmd.Context(), cmd, o, dc)
		},
	}
	cmd.Flags().StringVar(&dc.File, "file", "", "Path to the Swagger document")
	cmd.Flags().StringVar(&dc.URL, "url", "", "URL of the Swagger document")
	cmd.Flags().StringVarP(&dc.Output, "output", "o", "", "Write the JSON to a file instead of stdout")
	cmd.Flags().BoolVar(&dc.ConvertOpenAPI3, "convert-openapi3", false, "Down-convert OpenAPI 3 documents before parsing")
	return cmd
}

func runDefinition(ctx context.Context, cmd *cobra.Command, o *options, dc *DefinitionConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	file, url := strings.TrimSpace(dc.File), strings.TrimSpace(dc.URL)
	switch {
	case file == "" && url == "":
		return newUsageError("definition: one of --file or --url is required")
	case file != "" && url != "":
		return newUsageError("definition: specify either --file or --url, not both")
	}
	source := file
	if url != "" {
		source = url
	}

	def, err := spec.LoadDefinition(ctx, source, nil,
		spec.WithLogger(o.logger(cmd)),
		spec.WithOpenAPI3Downconvert(dc.ConvertOpenAPI3),
	)
	if err != nil {
		return err
	}
	data, err := marshalDefinition(def)
	if err != nil {
		return err
	}
	if dc.Output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	res, err := output.Write(dc.Output, data, output.Options{})
	if err != nil {
		return err
	}
	reporter{w: cmd.OutOrStdout()}.ok("definition", "%s", describe(res, false))
	return nil
}
