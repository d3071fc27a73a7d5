package tcos

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// NotifyOptions configures the optional SNS channel for failed batches.
type NotifyOptions struct {
	Topic   string
	Region  string
	Profile string
}

func NewSNSNotifier(opts NotifyOptions) (Notifier, error) {
	var notifier Notifier

	cfg, cfgErr := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithSharedConfigProfile(opts.Profile),
		awsconfig.WithRegion(opts.Region))
	if cfgErr != nil {
		return notifier, cfgErr
	}

	snsClient := &SNSClient{sns.NewFromConfig(cfg)}
	notifier = &SNSNotifier{Client: snsClient, Topic: opts.Topic}

	return notifier, nil
}

type SNSClientIface interface {
	PublishMessage(msg *sns.PublishInput) error
}

type SNSClient struct {
	Client *sns.Client
}

func (s *SNSClient) PublishMessage(msg *sns.PublishInput) error {
	_, publishErr := s.Client.Publish(context.Background(), msg)
	return publishErr
}

type SNSNotifier struct {
	Client SNSClientIface
	Topic  string
}

// NotifyBatchResults publishes one message listing every failed file of a
// batch. Fully successful (or fully skipped) batches publish nothing.
func (s *SNSNotifier) NotifyBatchResults(cfg UploadConfig, run *BatchRun) error {
	failed := make([]*FileOutcome, 0)
	for _, outcome := range run.Outcomes {
		if outcome.Err != nil {
			failed = append(failed, outcome)
		}
	}

	if len(failed) == 0 {
		return nil
	}

	notificationBody := ""
	for _, outcome := range failed {
		notificationBody += fmt.Sprintf(
			"Key: %s\nAttempts: %d\nError: %s\n\n",
			outcome.RemoteKey,
			outcome.Attempts,
			outcome.Err,
		)
	}

	snsPublishReq := &sns.PublishInput{
		Message:  aws.String(notificationBody),
		TopicArn: aws.String(s.Topic),
		Subject:  aws.String(fmt.Sprintf("Upload errors: %s/%s -> %s", cfg.BaseDir, cfg.Project, cfg.COS.Bucket)),
	}

	return s.Client.PublishMessage(snsPublishReq)
}
