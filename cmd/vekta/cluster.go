package main

import (
	"github.com/spf13/cobra"

	"github.com/hyperjump/vekta/internal/batch"
	"github.com/hyperjump/vekta/internal/cli"
	"github.com/hyperjump/vekta/internal/models"
	"github.com/hyperjump/vekta/internal/vector"
)

type clusterOptions struct {
	serverURL      string
	output         string
	minClusterSize float64
	minSamples     float64
}

func newClusterCmd(a *app) *cobra.Command {
	o := &clusterOptions{}
	cmd := &cobra.Command{
		Use:   "cluster [vectors-file ...]",
		Short: "Cluster vectors read from files or stdin",
		Long: `Cluster vectors into two centroid groups and report quality metrics.

Each file holds either a JSON array of number arrays or an object with a
"vectors" field; .gz and .zst files are decompressed. Without files, or with
"-", vectors are read from stdin.`,
		Example: `  vekta vectorize docs/ --save vectors.json.gz
  vekta cluster vectors.json.gz
  echo '[[0,1],[0,-1],[5,0]]' | vekta cluster --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCluster(cmd, a, o, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.serverURL, "server", "", "cluster through a running server at this URL")
	f.StringVarP(&o.output, "output", "o", "text", "output format: text or json")
	f.Float64Var(&o.minClusterSize, "min-cluster-size", 0, "accepted for compatibility; has no effect")
	f.Float64Var(&o.minSamples, "min-samples", 0, "accepted for compatibility; has no effect")
	return cmd
}

func runCluster(cmd *cobra.Command, a *app, o *clusterOptions, args []string) error {
	format, err := cli.ParseOutputFormat(o.output)
	if err != nil {
		return err
	}
	vs, err := readVectorInputs(cmd, args)
	if err != nil {
		return err
	}

	var resp *models.ClusterResponse
	if o.serverURL != "" {
		req, err := models.NewClusterRequest(vs)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("min-cluster-size") {
			req.MinClusterSize = &o.minClusterSize
		}
		if cmd.Flags().Changed("min-samples") {
			req.MinSamples = &o.minSamples
		}
		resp, err = newAPIClient(o.serverURL).Cluster(cmd.Context(), req)
		if err != nil {
			return err
		}
	} else {
		if cmd.Flags().Changed("min-cluster-size") || cmd.Flags().Changed("min-samples") {
			a.logger.Debug("ignoring min-cluster-size and min-samples")
		}
		resp = a.components().Engine.Cluster(vs)
	}
	return cli.WriteCluster(cmd.OutOrStdout(), resp, format)
}

// readVectorInputs concatenates the vectors of every argument, reading stdin
// for "-" or when there are no arguments.
func readVectorInputs(cmd *cobra.Command, args []string) ([]vector.Vector, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	var all []vector.Vector
	for _, arg := range args {
		var vs []vector.Vector
		var err error
		if arg == "-" {
			vs, err = batch.ReadVectors(cmd.InOrStdin())
		} else {
			vs, err = batch.LoadVectors(arg)
		}
		if err != nil {
			return nil, err
		}
		all = append(all, vs...)
	}
	return all, nil
}
