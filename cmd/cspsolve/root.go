package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	logger  = logrus.New()

	rootCmd = &cobra.Command{
		Use:   "cspsolve",
		Short: "Solve and benchmark constraint satisfaction problems",
		Long: `cspsolve drives the gocsp constraint satisfaction engine: solve a
single Sudoku board or graph-coloring instance, sweep a configuration
matrix and report aggregate statistics, or compare inference methods
head to head.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			if cfgFile != "" {
				viper.SetConfigFile(cfgFile)
				if err := viper.ReadInConfig(); err != nil {
					logger.Warnf("could not read config file %s: %v", cfgFile, err)
				}
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file with default solver options")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(compareCmd)
}
