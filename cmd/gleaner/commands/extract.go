package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gleanerhq/gleaner/internal/llm"
	"github.com/gleanerhq/gleaner/internal/logger"
	"github.com/gleanerhq/gleaner/internal/output"
	"github.com/gleanerhq/gleaner/internal/source"
	"github.com/gleanerhq/gleaner/pkg/extract"
	"github.com/gleanerhq/gleaner/pkg/schema"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured records from a document",
	Long: `Extract typed records from a document using an LLM.

The schema file defines the expected record shape: field names, kinds
(string, date, number, text), and required flags. The model response is
parsed and every record is validated against the schema; the resulting
report lists valid records alongside itemized failures.

Examples:
  # Basic extraction to stdout
  gleaner extract -s sanctions.yaml -i bulletin.txt

  # Tabular output, valid records only
  gleaner extract -s sanctions.yaml -i bulletin.txt -f csv -o sanctions.csv

  # Image input (attachment is resolved by the provider)
  gleaner extract -s gifts.yaml --attach register.png -p anthropic`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()

	// Inputs
	flags.StringP("schema", "s", "", "path to schema file (required)")
	flags.StringP("input", "i", "", "path to source document (text or HTML)")
	flags.String("attach", "", "attachment reference passed to the provider (e.g. image path)")

	// LLM settings
	flags.StringP("provider", "p", "", "LLM provider: anthropic, openai, openrouter, ollama (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.String("base-url", "", "custom API base URL")
	flags.Int("max-tokens", 8192, "max response tokens")
	flags.Float64("temperature", 0.1, "sampling temperature")
	flags.Duration("timeout", 120*time.Second, "model call timeout")

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("format", "f", "json", "output format: json, jsonl, yaml, csv")

	_ = extractCmd.MarkFlagRequired("schema")

	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	schemaPath, _ := cmd.Flags().GetString("schema")
	inputPath, _ := cmd.Flags().GetString("input")
	attachment, _ := cmd.Flags().GetString("attach")

	if inputPath == "" && attachment == "" {
		return fmt.Errorf("either --input or --attach is required")
	}

	s, err := schema.FromFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	registry := schema.NewRegistry()
	if err := registry.Register(s); err != nil {
		return err
	}

	var sourceText string
	if inputPath != "" {
		sourceText, err = source.Load(inputPath)
		if err != nil {
			return err
		}
	}

	call, providerName, err := buildModelCall(cmd)
	if err != nil {
		return err
	}
	logInfo("Provider: %s", providerName)

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	var reqOpts []extract.RequestOption
	if attachment != "" {
		reqOpts = append(reqOpts, extract.WithAttachment(attachment))
	}

	ext := extract.New(registry, call)
	report, err := ext.Extract(ctx, s.Name, sourceText, reqOpts...)
	if err != nil {
		return err
	}

	if report.ParseFailure != nil {
		logInfo("Warning: response could not be parsed (%s); raw response retained in report",
			report.ParseFailure.Kind)
	} else {
		logInfo("Records: %d total, %d valid, %d invalid", report.Total, report.Valid, report.Invalid)
	}

	return writeReport(cmd, report, s)
}

// buildModelCall resolves provider settings and wraps the provider as the
// pipeline's model-call capability.
func buildModelCall(cmd *cobra.Command) (extract.ModelCall, string, error) {
	providerName := viper.GetString("provider")
	apiKey := viper.GetString("api_key")
	if providerName == "" {
		providerName, apiKey = llm.DetectProvider()
	}

	cfg := llm.DefaultProviderConfig()
	cfg.APIKey = apiKey
	cfg.BaseURL = viper.GetString("base_url")
	cfg.Model = viper.GetString("model")

	provider, err := llm.NewProvider(providerName, cfg)
	if err != nil {
		return nil, "", err
	}

	callCfg := llm.DefaultCallConfig()
	if v, err := cmd.Flags().GetInt("max-tokens"); err == nil && v > 0 {
		callCfg.MaxTokens = v
	}
	if v, err := cmd.Flags().GetFloat64("temperature"); err == nil {
		callCfg.Temperature = v
	}

	return llm.AsModelCall(provider, callCfg), provider.Name(), nil
}

// writeReport serializes the report in the requested format.
func writeReport(cmd *cobra.Command, report extract.Report, s schema.Schema) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	w, err := output.NewWriter(out, output.Format(format), output.WithFields(s.FieldNames()))
	if err != nil {
		return err
	}

	if err := w.Write(report); err != nil {
		return err
	}
	return w.Close()
}
