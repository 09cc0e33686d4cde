package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fintech-ethics/themis/pkg/cli/config"
)

func cmdValidate() *cli.Command {
	var catalogPath string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to questionnaire catalog TOML (empty uses the built-in catalog)",
			Sources:     cli.EnvVars("THEMIS_CATALOG"),
			Destination: &catalogPath,
		},
	}

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a questionnaire catalog file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalogCfg, err := config.LoadCatalog(catalogPath)
			if err != nil {
				color.New(color.FgRed, color.Bold).Println("✗ Catalog validation failed")
				return goerr.Wrap(err, "catalog validation failed", goerr.V("path", catalogPath))
			}

			source := catalogPath
			if source == "" {
				source = "built-in catalog"
			}
			color.New(color.FgGreen, color.Bold).Printf("✓ Catalog is valid: %s\n", source)

			for _, qn := range catalogCfg.Questionnaires {
				total := 0
				for _, cat := range qn.Categories {
					total += len(cat.Questions)
				}
				fmt.Printf("  %s (%s): %d categories, %d questions, mode=%s\n",
					color.CyanString(qn.ID), qn.Name, len(qn.Categories), total, qn.Mode)
			}

			return nil
		},
	}
}
