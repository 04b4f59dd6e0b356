package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/vekta/internal/batch"
	"github.com/hyperjump/vekta/internal/cluster"
	"github.com/hyperjump/vekta/internal/config"
	"github.com/hyperjump/vekta/internal/embedding"
	"github.com/hyperjump/vekta/internal/extract"
	"github.com/hyperjump/vekta/pkg/utils"
)

const defaultConfigPath = "/usr/local/etc/vekta/config.yaml"

// app carries the state shared by every subcommand once the config is loaded.
type app struct {
	configPath string
	debug      bool

	cfg          *config.Config
	loadedConfig string
	logger       *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "vekta",
		Short: "Turn text, graphs and images into feature vectors and cluster them",
		Long: `vekta extracts deterministic 5-dimensional feature vectors from text,
graph edge lists and images, and partitions collections of vectors into
clusters with quality metrics. Use it locally or through its HTTP API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "config file path")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newServerCmd(a),
		newVectorizeCmd(a),
		newClusterCmd(a),
		newAnalyzeCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) load() error {
	cfg, path, err := loadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.debug {
		cfg.Debug = true
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.cfg = cfg
	a.loadedConfig = path
	a.logger = logger
	logger.Debug("Config loaded", zap.String("config_path", path), zap.Bool("debug", cfg.Debug))
	return nil
}

// loadConfig loads config from path. When path is the default, a config.yaml in
// the current directory takes precedence so commands run from a project
// directory pick up its settings. Returns the path actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			local := filepath.Join(cwd, "config.yaml")
			if _, err := os.Stat(local); err == nil {
				path = local
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// components holds the services built from config.
type components struct {
	Embedder   embedding.Embedder
	Engine     *cluster.Engine
	Extractor  *extract.Extractor
	Vectorizer *batch.Vectorizer
}

func (a *app) components() *components {
	var embedder embedding.Embedder = embedding.NewHeuristicEmbedder()
	if a.cfg.Cache.Enabled() {
		embedder = embedding.NewCachingEmbedder(embedder, a.cfg.Cache.Size)
	}
	extractor := extract.NewExtractor(extract.WithMaxBytes(a.cfg.Server.MaxBodyBytes))
	vectorizer := batch.NewVectorizer(extractor, embedder,
		batch.WithConcurrency(a.cfg.Batch.Concurrency),
		batch.WithLogger(a.logger),
	)
	return &components{
		Embedder:   embedder,
		Engine:     cluster.NewEngine(),
		Extractor:  extractor,
		Vectorizer: vectorizer,
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vekta version %s\n", version)
		},
	}
}
