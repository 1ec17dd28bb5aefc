package main

import (
	"github.com/spf13/cobra"

	"github.com/thorn-jmh/reqgen/pkg/config"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "reqgen [-o <outputDir>] [-e <emitter>] [--source <type>] <Model...>",
	Short: "Generate request validation code from table schemas",
	Long: `reqgen reads the columns and foreign keys of each model's table and
writes a request type holding its validation rules, messages and input
normalizers to <outputDir>/<Model>Request.<ext>.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		cfg, err := config.Load(configFile, cmd.Flags())
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg, args, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file (default ./reqgen.yaml if present)")
	config.RegisterFlags(rootCmd.Flags())
}
