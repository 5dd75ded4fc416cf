package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	"github.com/mshservicos/hidro-scheduler/internal/config"
)

const (
	maxPhotoWidth = 1600
	webpQuality   = 80
)

// PhotoStore converte fotos de OS para webp e sobe para o bucket.
// Sem bucket configurado, Upload devolve erro e o handler recusa a foto.
type PhotoStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewPhotoStore(cfg *config.Config) *PhotoStore {
	if cfg.S3Bucket == "" {
		return &PhotoStore{}
	}

	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	// Endpoint custom (MinIO, R2) usa path-style.
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &PhotoStore{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		publicURL: cfg.S3PublicURL,
	}
}

func (s *PhotoStore) Enabled() bool {
	return s != nil && s.client != nil
}

// Upload decodifica (jpeg/png), reduz para no máximo maxPhotoWidth de
// largura e grava como webp. Retorna a chave do objeto e a URL pública.
func (s *PhotoStore) Upload(
	ctx context.Context,
	workOrderID uint,
	r io.Reader,
) (string, string, error) {

	if !s.Enabled() {
		return "", "", fmt.Errorf("photo storage not configured")
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", "", fmt.Errorf("decode image: %w", err)
	}

	src = downscale(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return "", "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf(
		"work-orders/%d/%d-%s.webp",
		workOrderID,
		time.Now().Unix(),
		uuid.NewString()[:8],
	)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", "", fmt.Errorf("put object: %w", err)
	}

	url := key
	if s.publicURL != "" {
		url = s.publicURL + "/" + key
	}

	return key, url, nil
}

func downscale(src image.Image) image.Image {
	bounds := src.Bounds()
	if bounds.Dx() <= maxPhotoWidth {
		return src
	}

	ratio := float64(maxPhotoWidth) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, maxPhotoWidth, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	return dst
}
