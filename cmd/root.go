// Package cmd provides command-line interface commands for the harsift tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harsift/harsift/internal/classify"
)

var (
	cfgFile string
	quiet   bool
	verbose bool

	log zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "harsift",
	Short: "A CLI tool for sifting document links out of browser network captures",
	Long: `Harsift digs document links (PDFs, spreadsheets, reports) out of browser
network captures (HAR files) and saved web pages. It scans request and
response traffic for URL candidates, repairs the escaping damage they pick
up inside JSON and JavaScript payloads, and filters them down to the
documents you actually want with include/exclude keywords.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.harsift.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (suppress progress messages)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (show per-candidate detail)")
}

func setupLogger() {
	level := zerolog.InfoLevel

	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}

	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".harsift" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".harsift")
	}

	viper.SetDefault("filters.include", classify.DefaultInclude)
	viper.SetDefault("filters.exclude", classify.DefaultExclude)
	viper.SetDefault("filters.custom", classify.DefaultCustom)
	viper.SetDefault("history.dir", "")

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && !quiet {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// keywordLists resolves the three filter lists for a run: an explicitly
// set flag wins, otherwise the configured (or default) value applies.
func keywordLists(cmd *cobra.Command, includeFlag, excludeFlag, customFlag string) (include, exclude, custom []string) {
	includeStr := viper.GetString("filters.include")
	if cmd.Flags().Changed("include") {
		includeStr = includeFlag
	}

	excludeStr := viper.GetString("filters.exclude")
	if cmd.Flags().Changed("exclude") {
		excludeStr = excludeFlag
	}

	customStr := viper.GetString("filters.custom")
	if cmd.Flags().Changed("custom") {
		customStr = customFlag
	}

	return classify.ParseList(includeStr), classify.ParseList(excludeStr), classify.ParseList(customStr)
}
