package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kgscaffold/kgscaffold/internal/branding"
	"github.com/kgscaffold/kgscaffold/internal/config"
	"github.com/kgscaffold/kgscaffold/internal/output"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verboseFlag  bool
	indexURLFlag string
	timeoutFlag  string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` runs the pre- and post-generation hooks of a knowledge-graph
adapter project template: it derives the adapter names, hands them over to the
post-generation step, fills in the placeholders, pins the graph library version
and initializes the git repository.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		output.SetupLogging(verboseFlag)
		config.Load()
		return config.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&indexURLFlag, "index-url", "", "Package index base URL (env: "+branding.EnvVar(config.KeyIndexURL)+")")
	rootCmd.PersistentFlags().StringVar(&timeoutFlag, "timeout", "", "Version lookup timeout, e.g. 5s (env: "+branding.EnvVar(config.KeyLookupTimeout)+")")

	_ = viper.BindPFlag(config.KeyIndexURL, rootCmd.PersistentFlags().Lookup("index-url"))
	_ = viper.BindPFlag(config.KeyLookupTimeout, rootCmd.PersistentFlags().Lookup("timeout"))
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		output.Error(err.Error())
	}
	return err
}
