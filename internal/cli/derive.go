package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kgscaffold/kgscaffold/internal/config"
	"github.com/kgscaffold/kgscaffold/internal/handoff"
	"github.com/kgscaffold/kgscaffold/internal/naming"
	"github.com/kgscaffold/kgscaffold/internal/output"
)

var (
	deriveOut string
	deriveDir string
)

func init() {
	deriveCmd.Flags().StringVarP(&deriveOut, "out", "o", "", "Hand-off file name (default from config, generated_names.txt)")
	deriveCmd.Flags().StringVar(&deriveDir, "dir", ".", "Directory to write the hand-off file into")
	rootCmd.AddCommand(deriveCmd)
}

var deriveCmd = &cobra.Command{
	Use:   "derive <raw-name>",
	Short: "Derive adapter names and write the hand-off file",
	Long: `Derive the PascalCase, snake_case and adapter class names from a raw
adapter name and write them to the hand-off file read later by "finalize".

Run this as the template's pre-generation hook.`,
	Example: `  kgscaffold derive "My-Cool Resource!!"
  kgscaffold derive "Weather" --dir /tmp/render --out names.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := deriveOut
		if file == "" {
			file = config.Resolve().HandoffFile
		}
		path := filepath.Join(deriveDir, file)

		if _, err := runDerive(cmd.OutOrStdout(), afero.NewOsFs(), path, args[0]); err != nil {
			return err
		}
		output.Debug("hand-off file written", "path", path)
		return nil
	},
}

// runDerive derives the names for raw, writes the hand-off record to path and
// prints the names.
func runDerive(w io.Writer, fs afero.Fs, path, raw string) (naming.Names, error) {
	names := naming.Derive(raw)
	if names.Pascal == "" {
		output.Warn("name has no letters or digits", "name", raw)
	}

	if err := handoff.Write(fs, path, handoff.FromNames(names)); err != nil {
		return names, fmt.Errorf("writing hand-off file: %w", err)
	}

	fmt.Fprintln(w, "Generated adapter names:")
	printNames(w, names)
	return names, nil
}

func printNames(w io.Writer, names naming.Names) {
	fmt.Fprintf(w, "  Original: %s\n", names.Original)
	fmt.Fprintf(w, "  PascalCase: %s\n", names.Pascal)
	fmt.Fprintf(w, "  SnakeCase: %s\n", names.Snake)
	fmt.Fprintf(w, "  AdapterClass: %s\n", names.Class)
}
