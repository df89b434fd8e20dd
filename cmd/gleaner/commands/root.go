// Package commands implements the CLI commands for gleaner.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "gleaner",
	Short: "LLM-powered structured-data extraction from documents",
	Long: `Gleaner extracts typed, tabular records from free text using LLMs.

Define a schema for the records you want, point it at a document, and
get a validation report with coerced records in JSON, JSONL, YAML, or
CSV. Malformed model output never crashes a run: parse and validation
failures are folded into the report for review.

Examples:
  # Extract records from a text file
  gleaner extract -s schema.yaml -i report.txt

  # Clean an HTML document before prompting
  gleaner extract -s schema.yaml -i page.html -f csv -o records.csv

  # Use a specific provider and model
  gleaner extract -s schema.yaml -i report.txt -p anthropic -m claude-sonnet-4-5

  # Vision input via attachment (provider resolves the file)
  gleaner extract -s schema.yaml --attach scan.png -p anthropic`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.gleaner.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".gleaner")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("GLEANER")
	viper.AutomaticEnv()

	// Also check common API key env vars
	_ = viper.BindEnv("api_key", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "OPENROUTER_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
