package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/funcbridge/internal/config"
	"github.com/ppiankov/funcbridge/pkg/component"
	"github.com/ppiankov/funcbridge/pkg/schema"
	"github.com/ppiankov/funcbridge/pkg/wire"
)

func newValidateCmd() *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "validate <spec.yml> [spec.yml...]",
		Short: "Check component signature files and print their binding plan",
		Long: `Validate parses each YAML component signature, classifies every
parameter, and prints the binding plan. With --input it also checks the
signature against an ExecutorInput document: every handle and path
parameter must resolve to an entry in the document.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cfg, err := config.LoadSettings(configFile)
				if err != nil {
					return err
				}
				args = cfg.Specs
			}
			if len(args) == 0 {
				return fmt.Errorf("no signature files given (pass paths or set specs in the config file)")
			}

			var in *wire.ExecutorInput
			if inputFile != "" {
				loaded, err := wire.Load(inputFile)
				if err != nil {
					return err
				}
				in = loaded
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				comp, err := component.LoadSpec(path)
				if err != nil {
					fmt.Fprintf(out, "✗ %s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(out, "✓ %s (%s)\n", path, comp.Name)
				printPlan(cmd, comp, in)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d signature files invalid", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputFile, "input", "", "ExecutorInput document to check the signatures against")

	return cmd
}

// printPlan lists each parameter with its binding strategy and, when an
// input document is given, whether the document satisfies it.
func printPlan(cmd *cobra.Command, comp *component.Component, in *wire.ExecutorInput) {
	out := cmd.OutOrStdout()
	for _, p := range comp.Parameters {
		strategy, _ := schema.Classify(p.Type)
		note := ""
		if in != nil {
			note = resolveNote(strategy, p.Name, in)
		}
		fmt.Fprintf(out, "    %-24s %-28s %s\n", p.Name, strategy, note)
	}
	if comp.Returns.Type != nil {
		fmt.Fprintf(out, "    %-24s %s\n", "(return)", comp.Returns.Type)
	}
	for _, f := range comp.Returns.Fields {
		fmt.Fprintf(out, "    %-24s %s\n", "(return) "+f.Name, f.Type)
	}
}

func resolveNote(strategy schema.Strategy, name string, in *wire.ExecutorInput) string {
	switch strategy {
	case schema.BindParameter:
		if _, ok := in.InputParameters()[name]; !ok {
			return "(absent, binds nil)"
		}
	case schema.BindInputArtifact, schema.BindInputArtifactPath:
		key := name
		if strategy == schema.BindInputArtifactPath {
			key = schema.StripPathSuffix(name)
		}
		if in.InputArtifacts()[key].First() == nil {
			return "UNRESOLVED"
		}
	case schema.BindOutputArtifact, schema.BindOutputArtifactPath:
		key := name
		if strategy == schema.BindOutputArtifactPath {
			key = schema.StripPathSuffix(name)
		}
		if in.OutputArtifacts()[key].First() == nil {
			return "UNRESOLVED"
		}
	case schema.BindOutputParameterPath:
		key := schema.StripPathSuffix(name)
		if _, ok := in.OutputParameters()[key]; !ok {
			return "UNRESOLVED"
		}
	}
	return "ok"
}
