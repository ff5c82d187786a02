package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is resolved once at process start; nothing re-reads the
// environment per request.
type Config struct {
	HTTPAddr string

	AWSRegion      string
	DynamoEndpoint string // optional, for dynamodb-local

	TodosTable    string
	ProfilesTable string

	AttachmentBucket string
	UploadURLExpiry  time.Duration

	TopicARN string

	// Kafka settings for the notification-outcome event stream.
	// Empty brokers disable the stream.
	KafkaBrokers string
	EventsTopic  string
}

func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		AWSRegion:        getenv("AWS_REGION", "us-east-2"),
		DynamoEndpoint:   os.Getenv("DYNAMO_ENDPOINT"),
		TodosTable:       os.Getenv("TODOS_TABLE"),
		ProfilesTable:    os.Getenv("USER_PROFILE_TABLE"),
		AttachmentBucket: os.Getenv("ATTACHMENT_S3_BUCKET"),
		TopicARN:         os.Getenv("SNS_ARN"),
		KafkaBrokers:     os.Getenv("KAFKA_BROKERS"),
		EventsTopic:      getenv("KAFKA_TOPIC_EVENTS", "todo-notification-outcomes"),
	}

	for name, v := range map[string]string{
		"TODOS_TABLE":          cfg.TodosTable,
		"USER_PROFILE_TABLE":   cfg.ProfilesTable,
		"ATTACHMENT_S3_BUCKET": cfg.AttachmentBucket,
		"SNS_ARN":              cfg.TopicARN,
	} {
		if v == "" {
			return Config{}, fmt.Errorf("%s is required", name)
		}
	}

	expiry := getenv("SIGNED_URL_EXPIRATION", "300")
	secs, err := strconv.Atoi(expiry)
	if err != nil || secs <= 0 {
		return Config{}, fmt.Errorf("SIGNED_URL_EXPIRATION: invalid value %q", expiry)
	}
	cfg.UploadURLExpiry = time.Duration(secs) * time.Second

	return cfg, nil
}

// AttachmentBaseURL is the public read prefix for attachment objects; the
// object key (todoId) is appended to it.
func (c Config) AttachmentBaseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.AttachmentBucket, c.AWSRegion)
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
