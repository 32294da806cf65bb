package transport

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Breadcrumb drops human-readable progress notes into the object store under
// validations/{transactionId}.txt. Best effort only: nothing reads them back
// and a failed write never stops the workflow.
type Breadcrumb struct {
	s3     *s3.Client
	bucket string
	log    zerolog.Logger
}

func NewBreadcrumb(client *s3.Client, bucket string) *Breadcrumb {
	return &Breadcrumb{
		s3:     client,
		bucket: bucket,
		log:    zlog.With().Str("component", "breadcrumb").Logger(),
	}
}

func (b *Breadcrumb) Write(ctx context.Context, transactionID, note string) {
	if b == nil || b.s3 == nil || b.bucket == "" {
		return
	}

	key := "validations/" + transactionID + ".txt"
	_, err := b.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(note),
		ContentType: aws.String("text/plain"),
	})
	if err != nil {
		b.log.Warn().Err(err).Str("key", key).Msg("failed to write breadcrumb")
	}
}
