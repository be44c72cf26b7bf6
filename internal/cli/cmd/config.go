package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/startdash/internal/cli/styles"
	"github.com/bnema/startdash/internal/config"
)

const schemaFilePerm = 0o644

var schemaOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show where startdash reads its configuration and export its JSON Schema.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file, layout database and log locations",
	RunE:  runConfigPath,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the config file",
	Long: `Print the JSON Schema of config.toml, for editors that validate TOML
against a schema (taplo, Even Better TOML).

Examples:
  startdash config schema                      # Print to stdout
  startdash config schema -o schema.json       # Write to a file`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().StringVarP(&schemaOutput, "output", "o", "", "write the schema to a file instead of stdout")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	path := app.Configs.GetConfigFile()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println(renderer.RenderNoConfigFile(path))
		return nil
	}

	fmt.Println(renderer.RenderConfigInfo(path, app.DatabasePath(), app.Config.Logging.LogDir))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	data, err := config.Schema()
	if err != nil {
		return err
	}

	if schemaOutput == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(schemaOutput, append(data, '\n'), schemaFilePerm); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	fmt.Println(styles.NewConfigRenderer(styles.NewTheme()).RenderSchemaWritten(schemaOutput))
	return nil
}
