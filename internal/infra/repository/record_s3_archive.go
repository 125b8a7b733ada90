package repository

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	domain "github.com/BruksfildServices01/working-schedule/internal/domain/record"
	"github.com/BruksfildServices01/working-schedule/internal/models"
)

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

// objectPutter is the part of *s3.Client the archive uses.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// RecordS3Archive stores a copy of the form values each time a field is
// written, under <prefix>/<project>/<record>/<unix-nanos>.json.
type RecordS3Archive struct {
	client objectPutter
	bucket string
	prefix string
	now    func() time.Time
}

var _ domain.Archive = (*RecordS3Archive)(nil)

func NewRecordS3Archive(cfg S3Config) (*RecordS3Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket name is required")
	}

	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return newRecordS3Archive(s3.New(opts), cfg), nil
}

func newRecordS3Archive(client objectPutter, cfg S3Config) *RecordS3Archive {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "records"
	}
	return &RecordS3Archive{
		client: client,
		bucket: cfg.Bucket,
		prefix: prefix,
		now:    time.Now,
	}
}

func (a *RecordS3Archive) key(rec *models.Record) string {
	return fmt.Sprintf("%s/%d/%d/%d.json", a.prefix, rec.ProjectID, rec.ID, a.now().UnixNano())
}

func (a *RecordS3Archive) Put(ctx context.Context, rec *models.Record) error {
	key := a.key(rec)
	body := []byte(rec.FormValues)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 upload %q: %w", key, err)
	}
	return nil
}
