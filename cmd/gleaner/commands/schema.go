package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gleanerhq/gleaner/pkg/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Work with extraction schema files",
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a schema file for errors",
	Long: `Validate a schema definition file (JSON or YAML).

Checks that every field has a name and a known kind, that field names
are unique, and that at least one field is required.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schema.FromFile(args[0])
		if err != nil {
			return err
		}

		logInfo("Schema %q is valid (%d fields)", s.Name, len(s.Fields))
		for _, f := range s.Fields {
			req := ""
			if f.Required {
				req = ", required"
			}
			fmt.Printf("  %s (%s%s)\n", f.Name, f.Kind, req)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaValidateCmd)
}
