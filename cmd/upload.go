package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/isdelr/auction-lab/internal/services"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <auctionID> <file>",
	Short: "Upload an auction image through a presigned URL",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return err
		}

		contentType, _ := cmd.Flags().GetString("content-type")
		if contentType == "" {
			contentType = mime.TypeByExtension(filepath.Ext(args[1]))
		}
		primary, _ := cmd.Flags().GetBool("primary")

		image, err := app.Services.Images.Upload(cmd.Context(), services.ImageUpload{
			AuctionID:   args[0],
			Filename:    filepath.Base(args[1]),
			ContentType: contentType,
			Size:        info.Size(),
			Body:        f,
			Primary:     primary,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s as image %s\n", image.URL, image.ID)
		return nil
	}),
}

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Manage uploaded auction images",
}

var imagesPrimaryCmd = &cobra.Command{
	Use:   "primary <imageID>",
	Short: "Mark an image as its auction's primary image",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		image, err := app.Services.Images.SetPrimary(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Image %s is now primary for auction %s\n", image.ID, image.AuctionID)
		return nil
	}),
}

var imagesDeleteCmd = &cobra.Command{
	Use:   "delete <imageID>",
	Short: "Delete an image",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Services.Images.DeleteImage(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted image %s\n", args[0])
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(uploadCmd, imagesCmd)
	imagesCmd.AddCommand(imagesPrimaryCmd, imagesDeleteCmd)

	uploadCmd.Flags().String("content-type", "", "content type to declare (defaults to one guessed from the extension)")
	uploadCmd.Flags().Bool("primary", false, "make this the auction's primary image")
}
