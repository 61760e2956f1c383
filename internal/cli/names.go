package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kgscaffold/kgscaffold/internal/naming"
)

var (
	namesProject string
	namesJSON    bool
)

func init() {
	namesCmd.Flags().StringVar(&namesProject, "project", "", "Project name to suggest a package name and directory for")
	namesCmd.Flags().BoolVar(&namesJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(namesCmd)
}

var namesCmd = &cobra.Command{
	Use:   "names <raw-name>",
	Short: "Print the derived adapter names without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNames(cmd.OutOrStdout(), args[0], namesProject, namesJSON)
	},
}

type namesOutput struct {
	naming.Names
	Package string `json:"package_name,omitempty"`
	Slug    string `json:"project_slug,omitempty"`
}

func runNames(w io.Writer, raw, project string, asJSON bool) error {
	out := namesOutput{Names: naming.Derive(raw)}
	if project != "" {
		out.Package = naming.PackageName(project)
		out.Slug = naming.ProjectSlug(project)
	}

	if asJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling names: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	printNames(w, out.Names)
	if project != "" {
		fmt.Fprintf(w, "  Package: %s\n", out.Package)
		fmt.Fprintf(w, "  Directory: %s\n", out.Slug)
	}
	return nil
}
