package cli

import (
	"os"

	"foodgram-backend/cmd/config"
	"foodgram-backend/cmd/database/importcsv"
	"foodgram-backend/pkg/ingredient"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

var importCSVCmd = &cobra.Command{
	Use:   "importcsv <file>",
	Short: "load ingredients from a name,measurement_unit CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		rows, err := importcsv.ReadIngredients(f)
		if err != nil {
			return err
		}

		db, err := config.ConnectDB()
		if err != nil {
			return err
		}

		svc := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db))
		res, err := svc.ImportIngredients(cmd.Context(), rows)
		if err != nil {
			return err
		}

		log.Infof("%s: %d created, %d already present", args[0], res.Created, res.Existing)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCSVCmd)
}
