package cli

import (
	"os"

	"foodgram-backend/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "foodgram",
	Short: "Foodgram recipe sharing backend",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.LoadConfigFile(configFile)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "path to the YAML config file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
