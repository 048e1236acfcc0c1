package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single S3 upload
const UploadTimeout = 10 * time.Second

// Sink stores an encoded render under a name and returns where it ended up
type Sink interface {
	Write(ctx context.Context, name string, img image.Image) (string, error)
}

// FileSink writes renders to <Dir>/<name>/render_<timestamp>.<Format>
type FileSink struct {
	Dir    string
	Format string
	Now    func() time.Time // Clock for timestamps; nil means time.Now
}

// NewFileSink creates a file sink rooted at dir
func NewFileSink(dir, format string) *FileSink {
	return &FileSink{Dir: dir, Format: NormalizeFormat(format)}
}

// Write saves img and returns the file path
func (fs *FileSink) Write(ctx context.Context, name string, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	outputDir := filepath.Join(fs.Dir, name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	now := time.Now
	if fs.Now != nil {
		now = fs.Now
	}
	format := fs.Format
	if format == "" {
		format = DefaultFormat
	}

	timestamp := now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, format))

	if err := Save(img, filename); err != nil {
		return "", err
	}
	return filename, nil
}

// S3Config holds the connection settings for an S3-compatible bucket
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	CDNURL    string // Public base URL for uploaded objects, optional
}

// NewS3Client creates an S3 client with static credentials and path-style addressing,
// which works for AWS as well as S3-compatible stores
func NewS3Client(cfg S3Config) (s3iface.S3API, error) {
	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return s3.New(sess), nil
}

// S3Sink uploads encoded renders to a bucket under <Prefix>/<name>.<Format>
type S3Sink struct {
	client s3iface.S3API
	bucket string
	prefix string
	format string
	cdnURL string
}

// NewS3Sink creates a sink that uploads through client
func NewS3Sink(client s3iface.S3API, cfg S3Config, prefix, format string) *S3Sink {
	format = NormalizeFormat(format)
	if format == "" {
		format = DefaultFormat
	}
	return &S3Sink{
		client: client,
		bucket: cfg.Bucket,
		prefix: prefix,
		format: format,
		cdnURL: strings.TrimSuffix(cfg.CDNURL, "/"),
	}
}

// Key returns the object key used for name
func (s *S3Sink) Key(name string) string {
	return path.Join(s.prefix, name+"."+s.format)
}

// Write encodes and uploads img. It returns the public URL when a CDN URL is
// configured, otherwise an s3:// URI.
func (s *S3Sink) Write(ctx context.Context, name string, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, s.format); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := s.Key(name)
	size := int64(buf.Len())
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ContentType(s.format)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if s.cdnURL != "" {
		return s.cdnURL + "/" + key, nil
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
