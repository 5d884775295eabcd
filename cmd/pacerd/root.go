package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pacerd/internal/config"
)

const version = "0.2.0"

// newRootCmd constructs the Cobra command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pacerd",
		Short:         "Frame pacing daemon driving a simulated compositor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var (
		configPath string
		flagCfg    config.Config
	)

	// Flags with environment variable defaults.
	defaultAddr := ":8080"
	if v := os.Getenv("PACERD_ADDR"); v != "" {
		defaultAddr = v
	}
	defaultLevel := "info"
	if v := os.Getenv("PACERD_LOG_LEVEL"); v != "" {
		defaultLevel = v
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pacing daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flagCfg
			if configPath != "" {
				fileCfg, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = merge(fileCfg, flagCfg, cmd)
			}
			return runDaemon(cfg)
		},
	}
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a yaml/json/toml config file")
	runCmd.Flags().StringVar(&flagCfg.Addr, "addr", defaultAddr, "HTTP listen address, e.g. :8080")
	runCmd.Flags().StringVar(&flagCfg.LogLevel, "log-level", defaultLevel, "Log level: debug|info|warn|error")
	runCmd.Flags().IntVar(&flagCfg.MaxFramesInFlight, "max-in-flight", 3, "Maximum frames in flight")
	runCmd.Flags().IntVar(&flagCfg.MinFrameBuildTimeUS, "min-build-time-us", 0, "Frame build time estimate in microseconds")
	runCmd.Flags().IntVar(&flagCfg.VsyncHz, "vsync-hz", 60, "Simulated display refresh rate")
	runCmd.Flags().IntVar(&flagCfg.ProducerFPS, "producer-fps", 60, "Frame producer rate")
	root.AddCommand(runCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pacerd %s\n", version)
		},
	}
	root.AddCommand(versionCmd)

	return root
}

// merge overlays explicitly set flags on top of the file config.
func merge(file, flags config.Config, cmd *cobra.Command) config.Config {
	out := file
	if cmd.Flags().Changed("addr") || out.Addr == "" {
		out.Addr = flags.Addr
	}
	if cmd.Flags().Changed("log-level") || out.LogLevel == "" {
		out.LogLevel = flags.LogLevel
	}
	if cmd.Flags().Changed("max-in-flight") || out.MaxFramesInFlight == 0 {
		out.MaxFramesInFlight = flags.MaxFramesInFlight
	}
	if cmd.Flags().Changed("min-build-time-us") {
		out.MinFrameBuildTimeUS = flags.MinFrameBuildTimeUS
	}
	if cmd.Flags().Changed("vsync-hz") || out.VsyncHz == 0 {
		out.VsyncHz = flags.VsyncHz
	}
	if cmd.Flags().Changed("producer-fps") || out.ProducerFPS == 0 {
		out.ProducerFPS = flags.ProducerFPS
	}
	return out
}
