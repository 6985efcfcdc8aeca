package services

import (
	"context"
	"fmt"
	"io"

	"github.com/isdelr/auction-lab/internal/client"
	"github.com/isdelr/auction-lab/internal/models"
	"github.com/rs/zerolog/log"
)

// ImageServiceProvider defines the interface for auction image services.
type ImageServiceProvider interface {
	ListImages(ctx context.Context, auctionID string) ([]models.Image, error)
	Upload(ctx context.Context, upload ImageUpload) (models.Image, error)
	SetPrimary(ctx context.Context, imageID string) (models.Image, error)
	DeleteImage(ctx context.Context, imageID string) error
}

// ImageUpload describes a file as claimed by the uploader. ContentType and Size are
// passed to the API without being checked against Body.
type ImageUpload struct {
	AuctionID   string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Primary     bool
}

// ImageService uploads images straight to object storage through presigned URLs.
type ImageService struct {
	api    *client.Client
	events EventServiceProvider
}

// NewImageService creates a new ImageService.
func NewImageService(api *client.Client, events EventServiceProvider) *ImageService {
	return &ImageService{api: api, events: events}
}

func (s *ImageService) ListImages(ctx context.Context, auctionID string) ([]models.Image, error) {
	return s.api.ListImages(ctx, auctionID)
}

// Upload requests a presigned URL, PUTs the bytes to it and registers the object.
func (s *ImageService) Upload(ctx context.Context, upload ImageUpload) (models.Image, error) {
	target, err := s.api.RequestUploadURL(ctx, models.UploadURLRequest{
		AuctionID:   upload.AuctionID,
		Filename:    upload.Filename,
		ContentType: upload.ContentType,
		Size:        upload.Size,
	})
	if err != nil {
		return models.Image{}, fmt.Errorf("request upload url: %w", err)
	}

	log.Debug().Str("object_key", target.ObjectKey).Str("auction_id", upload.AuctionID).Msg("Uploading image to presigned URL")
	if err := s.api.PutObject(ctx, target.UploadURL, upload.ContentType, upload.Body, upload.Size); err != nil {
		return models.Image{}, err
	}

	image, err := s.api.RegisterImage(ctx, models.NewImage{
		AuctionID:   upload.AuctionID,
		ObjectKey:   target.ObjectKey,
		ContentType: upload.ContentType,
		Size:        upload.Size,
		IsPrimary:   upload.Primary,
	})
	if err != nil {
		return models.Image{}, fmt.Errorf("register image: %w", err)
	}
	record(s.events, "image.uploaded", "info", "Uploaded "+upload.Filename, &upload.AuctionID)
	return image, nil
}

func (s *ImageService) SetPrimary(ctx context.Context, imageID string) (models.Image, error) {
	return s.api.SetPrimaryImage(ctx, imageID)
}

func (s *ImageService) DeleteImage(ctx context.Context, imageID string) error {
	return s.api.DeleteImage(ctx, imageID)
}
