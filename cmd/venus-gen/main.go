// Command venus-gen is the CLI front end for the Venus wire protocol
// generator: it loads the Vulkan registry, plans its serializable surface,
// and hands the result to a templating layer (out of scope here; this
// command prints a short summary suitable for smoke-testing the pipeline).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/venusgen/venus-gen/cache"
	"github.com/venusgen/venus-gen/plan"
	"github.com/venusgen/venus-gen/watch"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outDir      string
		banner      string
		renderer    bool
		watchMode   bool
		cacheDir    string
		wireVersion int
		dump        bool
	)

	cmd := &cobra.Command{
		Use:   "venus-gen REGISTRY_XML [PRIVATE_XML...]",
		Short: "Plan the Venus wire protocol's serializable surface from a Vulkan registry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if outDir == "" {
				return fmt.Errorf("--outdir is required")
			}

			variant := plan.Driver
			if renderer {
				variant = plan.Renderer
			}

			opts := plan.Options{
				RegistryPaths: args,
				Variant:       variant,
				WireVersion:   wireVersion,
			}

			run := func() error {
				doc, err := buildDocument(c.Context(), opts, cacheDir)
				if err != nil {
					return err
				}
				if dump {
					spew.Fdump(c.ErrOrStderr(), doc)
				}
				return summarize(c, doc, outDir, banner)
			}

			if watchMode {
				return watch.Run(c.Context(), args, run)
			}
			return run()
		},
	}

	cmd.Flags().StringVar(&outDir, "outdir", "", "output directory for generated headers (required)")
	cmd.Flags().StringVar(&banner, "banner", "", "optional banner text prepended to each generated file")
	cmd.Flags().BoolVar(&renderer, "renderer", false, "generate the renderer variant (default: driver)")
	cmd.Flags().BoolVar(&watchMode, "watch", false, "re-run the pipeline whenever a registry input file changes")
	cmd.Flags().StringVar(&cacheDir, "cache", "", "optional directory for a build manifest (opcodes, group names) keyed by input hash")
	cmd.Flags().IntVar(&wireVersion, "wire-version", 1, "wire-format version constant emitted into the generated header")
	cmd.Flags().BoolVar(&dump, "dump", false, "pretty-print the full planned Document to stderr for debugging")

	return cmd
}

func buildDocument(ctx context.Context, opts plan.Options, cacheDir string) (*plan.Document, error) {
	if cacheDir == "" {
		return plan.Build(ctx, opts)
	}
	return cache.BuildCached(ctx, cacheDir, opts)
}

func summarize(c *cobra.Command, doc *plan.Document, outDir, banner string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	variant := "driver"
	if doc.Variant == plan.Renderer {
		variant = "renderer"
	}
	fmt.Fprintf(c.OutOrStdout(), "%s: %d groups, %d opcodes, %d planned variables (variant=%s)\n",
		bannerOrDefault(banner), len(doc.Groups), len(doc.Opcodes.ByName), len(doc.VariablePlans), variant)
	return nil
}

func bannerOrDefault(banner string) string {
	if banner != "" {
		return banner
	}
	return "/* generated by venus-gen, do not edit */"
}
