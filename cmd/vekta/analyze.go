package main

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/vekta/internal/batch"
	"github.com/hyperjump/vekta/internal/cli"
	"github.com/hyperjump/vekta/internal/models"
)

type analyzeOptions struct {
	serverURL string
	output    string
	recursive bool
}

func newAnalyzeCmd(a *app) *cobra.Command {
	o := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <file|dir> ...",
		Short: "Vectorize files and cluster all resulting vectors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, a, o, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.serverURL, "server", "", "analyze through a running server at this URL")
	f.StringVarP(&o.output, "output", "o", "text", "output format: text or json")
	f.BoolVarP(&o.recursive, "recursive", "r", true, "descend into subdirectories")
	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app, o *analyzeOptions, args []string) error {
	format, err := cli.ParseOutputFormat(o.output)
	if err != nil {
		return err
	}
	files, err := batch.CollectFiles(args, nil, o.recursive)
	if err != nil {
		return err
	}
	c := a.components()

	req := &models.AnalyzeRequest{Inputs: make([]models.VectorizeRequest, 0, len(files))}
	for _, path := range files {
		in, err := c.Extractor.Request(path)
		if err != nil {
			a.logger.Warn("Skipping file", zap.String("path", path), zap.Error(err))
			continue
		}
		req.Inputs = append(req.Inputs, *in)
	}
	if len(req.Inputs) == 0 {
		return errors.New("no readable input files")
	}

	var resp *models.AnalyzeResponse
	if o.serverURL != "" {
		resp, err = newAPIClient(o.serverURL).Analyze(cmd.Context(), req)
		if err != nil {
			return err
		}
	} else {
		resp = batch.Analyze(c.Embedder, c.Engine, req)
	}
	return cli.WriteAnalyze(cmd.OutOrStdout(), resp, format)
}
