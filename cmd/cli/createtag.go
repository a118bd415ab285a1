package cli

import (
	"foodgram-backend/cmd/config"
	"foodgram-backend/domain"
	"foodgram-backend/internal/utils"
	"foodgram-backend/pkg/tag"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

var tagReq domain.CreateTagRequest

var createTagCmd = &cobra.Command{
	Use:   "createtag",
	Short: "add a recipe tag",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := config.ConnectDB()
		if err != nil {
			return err
		}

		utils.InitValidator()
		svc := tag.NewTagService(tag.NewTagRepository(db), utils.Validate)
		res, err := svc.CreateTag(cmd.Context(), tagReq)
		if err != nil {
			return err
		}

		log.Infof("created tag %s (%s, %s)", res.Slug, res.Name, res.Color)
		return nil
	},
}

func init() {
	createTagCmd.Flags().StringVar(&tagReq.Name, "name", "", "display name")
	createTagCmd.Flags().StringVar(&tagReq.Color, "color", "", "hex color, e.g. #E26C2D")
	createTagCmd.Flags().StringVar(&tagReq.Slug, "slug", "", "unique slug")
	_ = createTagCmd.MarkFlagRequired("name")
	_ = createTagCmd.MarkFlagRequired("color")
	_ = createTagCmd.MarkFlagRequired("slug")
	rootCmd.AddCommand(createTagCmd)
}
