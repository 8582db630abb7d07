package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3AttachmentFinder lists montage documents stored in S3.
//
// Object layout:
//   - montages/<montage_id>/<document_type>/<file name>
//
// The document type is the path segment right after the montage id.
type S3AttachmentFinder struct {
	client s3.ListObjectsV2APIClient
	bucket string
}

var _ interfaces.IAttachmentFinder = (*S3AttachmentFinder)(nil)

// NewS3AttachmentFinder reads the bucket from S3_ATTACHMENTS_BUCKET.
// S3_ENDPOINT switches to a path-style local endpoint.
func NewS3AttachmentFinder(cfg aws.Config) *S3AttachmentFinder {
	bucket := os.Getenv("S3_ATTACHMENTS_BUCKET")
	endpoint := os.Getenv("S3_ENDPOINT")
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3AttachmentFinder{client: client, bucket: bucket}
}

func (f *S3AttachmentFinder) Enabled() bool {
	return f != nil && f.client != nil && f.bucket != ""
}

func (f *S3AttachmentFinder) FindByMontage(ctx context.Context, montageID string) ([]entities.Attachment, error) {
	if !f.Enabled() {
		log.Printf("[storage][s3] attachments bucket not configured montage_id=%s", montageID)
		return nil, nil
	}
	prefix := montagePrefix(montageID)

	var keys []string
	p := s3.NewListObjectsV2Paginator(f.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(f.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			log.Printf("[storage][s3] list failed bucket=%s prefix=%s err=%v", f.bucket, prefix, err)
			return nil, err
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return attachmentsFromKeys(f.bucket, prefix, keys), nil
}

func montagePrefix(montageID string) string {
	return "montages/" + montageID + "/"
}

// attachmentsFromKeys maps object keys under prefix to attachments. Keys with
// no file below the type segment are ignored.
func attachmentsFromKeys(bucket, prefix string, keys []string) []entities.Attachment {
	var out []entities.Attachment
	for _, key := range keys {
		rest := strings.TrimPrefix(key, prefix)
		if rest == key {
			continue
		}
		docType, file, ok := strings.Cut(rest, "/")
		if !ok || docType == "" || file == "" {
			continue
		}
		out = append(out, entities.Attachment{
			Type: docType,
			URL:  fmt.Sprintf("s3://%s/%s", bucket, key),
		})
	}
	return out
}
