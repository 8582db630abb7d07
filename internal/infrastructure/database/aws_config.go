package database

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// LoadAWSConfig builds the AWS configuration shared by every client of the
// service (DynamoDB, S3, SNS, SES).
//
// Supported env vars (local-friendly):
//   - AWS_REGION (default: eu-central-1)
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (static credentials when both set)
func LoadAWSConfig(ctx context.Context) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(getenvDefault("AWS_REGION", "eu-central-1")),
	}

	// Local emulators do not validate credentials, but the AWS SDK requires them.
	key, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if key != "" && secret != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, os.Getenv("AWS_SESSION_TOKEN")),
		))
	}
	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// ConnectDynamoDB creates a DynamoDB client from cfg. DYNAMODB_ENDPOINT
// (e.g. http://dynamodb:8000) points it at a local instance.
func ConnectDynamoDB(cfg aws.Config) *dynamodb.Client {
	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if endpoint == "" {
		return dynamodb.NewFromConfig(cfg)
	}
	log.Printf("[database][dynamodb] using endpoint %s", endpoint)
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
