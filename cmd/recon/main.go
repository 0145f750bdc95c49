package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/salesrecon/internal/ingest"
	"github.com/andresuchdata/salesrecon/internal/pipeline"
	"github.com/andresuchdata/salesrecon/internal/service"
	"github.com/andresuchdata/salesrecon/pkg/logger"
)

func tableFlag(name, usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     name,
		Usage:    usage,
		Required: true,
	}
}

func main() {
	app := &cli.App{
		Name:  "recon",
		Usage: "Reconcile sales files against client and product reference data",
		Flags: []cli.Flag{
			tableFlag("sales", "Current-period sales file (csv or xlsx)"),
			tableFlag("clients", "Client reference file (csv or xlsx)"),
			tableFlag("products", "Product reference file (csv or xlsx)"),
			tableFlag("history", "Historical sales file (csv or xlsx)"),
			&cli.StringFlag{
				Name:  "out",
				Usage: "Output JSON path (default: stdout)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("recon failed")
	}
}

func run(c *cli.Context) error {
	logger.SetLevel(c.String("log-level"))

	tables := make(map[string]pipeline.Table, 4)
	for _, name := range []string{"sales", "clients", "products", "history"} {
		path := c.String(name)
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s file %s: %w", name, path, err)
		}
		defer f.Close()

		tables[name] = pipeline.Table{
			Label:  path,
			Format: ingest.FormatForFilename(path),
			Reader: f,
		}
	}

	svc := service.NewReconService(true)
	result, err := svc.Process(c.Context, pipeline.Inputs{
		Sales:    tables["sales"],
		Clients:  tables["clients"],
		Products: tables["products"],
		History:  tables["history"],
	})
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if out := c.String("out"); out != "" {
		if err := os.WriteFile(out, payload, 0644); err != nil {
			return fmt.Errorf("failed to write result to %s: %w", out, err)
		}
		logger.Log.Info().Str("path", out).Msg("result written")
		return nil
	}

	_, err = os.Stdout.Write(append(payload, '\n'))
	return err
}
