package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Signer mints pre-signed, single-object PUT URLs against the attachment
// bucket. It holds no state beyond the bucket name and the expiry window;
// it does not check whether the object already exists and does not
// constrain content type or size.
type Signer struct {
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

func NewSigner(client *s3.Client, bucket string, expiry time.Duration) *Signer {
	return &Signer{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		expiry:  expiry,
	}
}

// UploadURL returns a write URL scoped to exactly the given object key,
// valid for the configured expiry.
func (s *Signer) UploadURL(ctx context.Context, objectID string) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectID),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", objectID, err)
	}
	return req.URL, nil
}
