package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/dtsgen/pkg/action/generate"
	"github.com/cmmoran/dtsgen/pkg/options"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

// optionKeys maps generation flags to their config keys.
var optionKeys = map[string]string{
	"provider":           "provider",
	"input":              "inputs",
	"dir":                "dir",
	"seed":               "seeds",
	"output-directory":   "out_dir",
	"output-file":        "out_file",
	"root-namespace":     "root_namespace",
	"indent":             "indent",
	"exclude-types":      "exclude_types",
	"exclude-namespaces": "exclude_namespaces",
	"trim-module-prefix": "trim_module_prefix",
}

// addOptionFlags registers the generation flags on flags, defaulting to
// the values in NewOptions.
func addOptionFlags(flags *pflag.FlagSet) {
	d := options.NewOptions()
	flags.StringP("provider", "p", d.Provider, "descriptor source: metadata or go")
	flags.StringSliceP("input", "i", []string{}, "metadata dump files, or package patterns for the go provider")
	flags.String("dir", d.Dir, "working directory for the go provider")
	flags.StringSliceP("seed", "s", []string{}, "qualified type names to start discovery from (default: every provided type)")
	flags.StringP("output-directory", "o", d.OutDir, "directory to write declarations")
	flags.StringP("output-file", "f", d.OutFile, "output file where declarations will be written")
	flags.String("root-namespace", d.RootNamespace, "ambient namespace wrapping every declaration")
	flags.String("indent", d.Indent, "indentation for one nesting level")
	flags.StringSliceP("exclude-types", "t", []string{}, "exclude named types from the seed list")
	flags.StringSliceP("exclude-namespaces", "n", []string{}, "exclude namespaces (and their children) from the seed list")
	flags.Bool("trim-module-prefix", false, "go provider: drop the module path from namespaces")
}

// loadOptions binds flags to their config keys and decodes the merged view
// of flags, config file and environment.
func loadOptions(flags *pflag.FlagSet) (*options.Options, error) {
	for flag, key := range optionKeys {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, errors.Wrapf(err, "bind flag %s", flag)
		}
	}

	opts := options.NewOptions()
	if err := viper.Unmarshal(opts); err != nil {
		return nil, errors.Wrap(err, "decode options")
	}
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	return opts, nil
}

func NewGenerateCommand() *cobra.Command {
	var dryRun bool

	// generateCmd represents the dtsgen generate command
	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate declarations",
		Long:  "Discover every type reachable from the seeds and write them as TypeScript ambient declarations",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c.Flags())
			if err != nil {
				return err
			}
			if dryRun {
				text, err := generate.Render(fs, opts)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(c.OutOrStdout(), text)
				return err
			}
			_, err = generate.Generate(fs, opts)
			return err
		},
	}
	addOptionFlags(generateCmd.Flags())
	generateCmd.Flags().BoolVar(&dryRun, "stdout", false, "print declarations instead of writing them")

	return generateCmd
}
