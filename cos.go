package tcos

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// COSClient talks to Tencent COS over its S3-compatible endpoint.
type COSClient struct {
	Client *s3.Client
}

var _ RemoteStore = (*COSClient)(nil)

// NewCOSClient builds a RemoteStore from the opaque credential options.
func NewCOSClient(opts COSOptions) (*COSClient, error) {
	configOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.SecretID != "" && opts.SecretKey != "" {
		configOpts = append(configOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.SecretID, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), configOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading store config: %w", err)
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://cos.%s.myqcloud.com", opts.Region)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &COSClient{Client: client}, nil
}

func (c *COSClient) HeadExists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := c.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, wrapStoreError("HeadObject", err)
	}

	return true, nil
}

func (c *COSClient) Put(ctx context.Context, bucket, key string, body io.Reader) (PutResult, error) {
	uploader := manager.NewUploader(c.Client)
	output, putErr := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if putErr != nil {
		return PutResult{}, wrapStoreError("PutObject", putErr)
	}

	return PutResult{
		Location: output.Location,
		ETag:     aws.ToString(output.ETag),
	}, nil
}
