package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/config"
	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/events"
	httpapi "github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/http"
	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/notify"
	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/service"
	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/store"
	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/upload"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Error("load aws config", "err", err)
		os.Exit(1)
	}

	db := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	})

	recordStore := store.NewDynamoStore(db, cfg.TodosTable, cfg.ProfilesTable)
	signer := upload.NewSigner(s3.NewFromConfig(awsCfg), cfg.AttachmentBucket, cfg.UploadURLExpiry)
	subscriptions := notify.NewSNSSubscriptions(sns.NewFromConfig(awsCfg), cfg.TopicARN)

	var outcomes service.OutcomeRecorder
	if cfg.KafkaBrokers != "" {
		producer := events.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic)
		defer producer.Close()
		outcomes = producer
	} else {
		log.Warn("KAFKA_BROKERS not set; notification outcomes will not be streamed")
	}

	app := &httpapi.App{
		Todos:    service.NewTodos(recordStore, recordStore, subscriptions, signer, outcomes, cfg.AttachmentBaseURL()),
		Profiles: service.NewProfiles(recordStore, subscriptions),
		Log:      log.With("component", "http"),
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-User-Id"},
	}))
	httpapi.RegisterRoutes(r, app)

	log.Info("api listening", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Error("http server", "err", err)
		os.Exit(1)
	}
}
