package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dating-backend/internal/config"
	"dating-backend/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var allowedPhotoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// Presigner signs S3 upload requests
type Presigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*PresignedRequest, error)
}

// PresignedRequest is a signed upload request
type PresignedRequest struct {
	URL string
}

type s3Presigner struct {
	client *s3.PresignClient
}

func (p *s3Presigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*PresignedRequest, error) {
	req, err := p.client.PresignPutObject(ctx, params, optFns...)
	if err != nil {
		return nil, err
	}
	return &PresignedRequest{URL: req.URL}, nil
}

// PhotoService hands out pre-signed upload URLs and records photo URLs on profiles
type PhotoService struct {
	users     repository.UserStore
	presigner Presigner
	bucket    string
	publicURL string
	ttl       time.Duration
}

// UploadRequest represents a request to get a pre-signed URL
type UploadRequest struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"required"`
}

// UploadResponse represents the response with pre-signed URL
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	PhotoURL  string `json:"photo_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}

// NewPhotoService creates a photo service backed by S3. An empty bucket
// returns a service whose Presign reports ErrNotConfigured.
func NewPhotoService(ctx context.Context, users repository.UserStore, cfg config.AWSConfig) (*PhotoService, error) {
	svc := &PhotoService{
		users:     users,
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		ttl:       cfg.PresignTTL,
	}
	if cfg.S3Bucket == "" {
		return svc, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	svc.presigner = &s3Presigner{client: s3.NewPresignClient(client)}

	if svc.publicURL == "" {
		if cfg.Endpoint != "" {
			svc.publicURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.S3Bucket
		} else {
			svc.publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.Region)
		}
	}
	return svc, nil
}

// NewPhotoServiceWithPresigner creates a photo service with a custom signer
func NewPhotoServiceWithPresigner(users repository.UserStore, presigner Presigner, bucket, publicURL string, ttl time.Duration) *PhotoService {
	return &PhotoService{
		users:     users,
		presigner: presigner,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		ttl:       ttl,
	}
}

// Presign signs an upload of one photo for userID and appends the resulting
// public URL to the profile photo_urls.
func (s *PhotoService) Presign(ctx context.Context, userID string, req UploadRequest) (*UploadResponse, error) {
	const op = "services.PhotoService.Presign"

	if s.presigner == nil {
		return nil, fmt.Errorf("%s: photo storage: %w", op, ErrNotConfigured)
	}
	if req.Filename == "" || req.ContentType == "" {
		return nil, Invalid("missing filename or content_type")
	}
	ext, ok := allowedPhotoTypes[req.ContentType]
	if !ok {
		return nil, Invalid("unsupported content type %q", req.ContentType)
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, storeErr(op, err)
	}

	key := fmt.Sprintf("users/%s/%s%s", userID, uuid.NewString(), ext)
	ttl := s.ttl
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	signed, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(req.ContentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to generate pre-signed URL: %w", op, err)
	}

	photoURL := s.publicURL + "/" + key
	urls := append(repository.CopyStrings(user.PhotoURLs), photoURL)
	if err := s.users.UpdateUser(ctx, userID, repository.UserPatch{PhotoURLs: &urls}); err != nil {
		return nil, storeErr(op, err)
	}

	log.Info().Str("user_id", userID).Str("key", key).Str("filename", req.Filename).Msg("Photo upload presigned")

	return &UploadResponse{
		UploadURL: signed.URL,
		PhotoURL:  photoURL,
		Key:       key,
		ExpiresIn: int(ttl.Seconds()),
	}, nil
}
