package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-data/internal/importer"
	"github.com/rxtech-lab/argo-data/pkg/feed"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	profileSchemaName = "argo-data-import-profile.json"
	profileSampleName = "argo-data-import-profile.yaml"
	feedSchemaName    = "argo-data-feed-config.json"
)

func newSchemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Generate JSON schemas and a sample import profile",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory the schemas are written to",
				Value:   "./config",
			},
		},
		Action: schemaAction,
	}
}

// schemaAction writes the import profile schema, the feed config
// schema and, when missing, a sample profile wired to the schema via a
// yaml-language-server directive.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	outputDir := cmd.String("output")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	sample := importer.SampleProfile()

	profileSchema, err := sample.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate profile schema: %w", err)
	}

	profileSchemaPath := filepath.Join(outputDir, profileSchemaName)
	if err := os.WriteFile(profileSchemaPath, []byte(profileSchema), 0644); err != nil {
		return fmt.Errorf("failed to write profile schema: %w", err)
	}

	fmt.Printf("Wrote %s\n", profileSchemaPath)

	feedSchema, err := feed.GenerateConfigSchema()
	if err != nil {
		return fmt.Errorf("failed to generate feed config schema: %w", err)
	}

	feedSchemaPath := filepath.Join(outputDir, feedSchemaName)
	if err := os.WriteFile(feedSchemaPath, []byte(feedSchema), 0644); err != nil {
		return fmt.Errorf("failed to write feed config schema: %w", err)
	}

	fmt.Printf("Wrote %s\n", feedSchemaPath)

	// The sample profile is a starting point for hand edits, so an
	// existing one is never overwritten.
	samplePath := filepath.Join(outputDir, profileSampleName)
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(sample)
		if err != nil {
			return fmt.Errorf("failed to marshal sample profile: %w", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+profileSchemaName+"\n"), yamlBytes...)

		if err := os.WriteFile(samplePath, yamlBytes, 0644); err != nil {
			return fmt.Errorf("failed to write sample profile: %w", err)
		}

		fmt.Printf("Wrote %s\n", samplePath)
	}

	return nil
}
