package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// s3GetObjectAPI is the subset of the S3 client used by S3Source.
type s3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads artifacts from s3://<Bucket>/<Prefix>/<name>.
type S3Source struct {
	Client s3GetObjectAPI
	Bucket string
	Prefix string
}

// NewS3Source loads the default AWS credential chain and returns a source for bucket.
func NewS3Source(ctx context.Context, bucket, prefix, region string) (*S3Source, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 source requires a bucket")
	}

	var opts []func(*awsconfig.LoadOptions) error
	if r := strings.TrimSpace(region); r != "" {
		opts = append(opts, awsconfig.WithRegion(r))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Source{Client: s3.NewFromConfig(cfg), Bucket: bucket, Prefix: prefix}, nil
}

func (s *S3Source) Get(ctx context.Context, name string) ([]byte, error) {
	key := path.Join(strings.Trim(s.Prefix, "/"), strings.TrimPrefix(name, "/"))
	logf("s3 get s3://%s/%s", s.Bucket, key)

	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(name, err)
	}
	defer out.Body.Close()
	return readArtifact(out.Body, name, MaxArtifactBytes)
}

func classifyS3Error(name string, err error) error {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return notFound(name, err)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return notFound(name, err)
		}
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		status := respErr.HTTPStatusCode()
		if status == http.StatusNotFound || status == http.StatusUnauthorized || status == http.StatusForbidden {
			return &ArtifactError{Name: name, StatusCode: status, Err: err}
		}
	}
	return err
}
