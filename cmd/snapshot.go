package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/dtsgen/pkg/action/snapshot"
)

func init() {
	rootCmd.AddCommand(NewSnapshotCommand())
}

func NewSnapshotCommand() *cobra.Command {
	var manifestPath string

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "manage declaration snapshots",
	}
	snapshotCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "dtsgen.manifest.yaml", "path to the snapshot manifest")

	var name, ver string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "generate declarations and record a versioned snapshot",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c.Flags())
			if err != nil {
				return err
			}
			file, err := snapshot.Generate(fs, opts, manifestPath, name, ver)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.OutOrStdout(), file)
			return err
		},
	}
	addOptionFlags(createCmd.Flags())
	createCmd.Flags().StringVar(&name, "name", "declarations", "snapshot name")
	createCmd.Flags().StringVar(&ver, "version", "", "snapshot version")
	_ = createCmd.MarkFlagRequired("version")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded snapshots",
		RunE: func(c *cobra.Command, args []string) error {
			m, err := snapshot.List(fs, manifestPath)
			if err != nil {
				return err
			}
			out := c.OutOrStdout()
			for _, s := range m.Snapshots {
				marker := " "
				if s.Version == m.CurrentVersion {
					marker = "*"
				}
				if _, err := fmt.Fprintf(out, "%s %s@%s\t%s\n", marker, s.Name, s.Version, s.File); err != nil {
					return err
				}
			}
			return nil
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "diff the current snapshot against the previous one",
		RunE: func(c *cobra.Command, args []string) error {
			diff, err := snapshot.DiffCurrentWithPrevious(fs, manifestPath)
			if err != nil {
				return err
			}
			if diff == "" {
				_, err = fmt.Fprintln(c.OutOrStdout(), "no changes")
				return err
			}
			_, err = fmt.Fprint(c.OutOrStdout(), diff)
			return err
		},
	}

	snapshotCmd.AddCommand(createCmd, listCmd, diffCmd)
	return snapshotCmd
}
