// eventtail follows the notification-outcome topic and logs each event.
// It exists so the one failure the API deliberately swallows (a creation
// notification that didn't go out) is visible from the outside.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/events"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	brokersCSV := getenv("KAFKA_BROKERS", "localhost:9092")
	topic := getenv("KAFKA_TOPIC_EVENTS", "todo-notification-outcomes")
	groupID := getenv("KAFKA_EVENTTAIL_GROUP", "todo-eventtail")

	consumer := events.NewConsumer(events.SplitBrokers(brokersCSV), topic, groupID)
	defer consumer.Close()

	log.Info("eventtail started", "topic", topic, "brokers", brokersCSV)

	for {
		o, commit, err := consumer.ReadOutcome(ctx)
		if err != nil {
			log.Error("read", "err", err)
			time.Sleep(500 * time.Millisecond)
			continue
		}

		level := slog.LevelInfo
		if o.Outcome == events.OutcomeFailed {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "notification outcome",
			"userId", o.UserID,
			"todoId", o.TodoID,
			"outcome", o.Outcome,
			"error", o.Error,
			"at", time.UnixMilli(o.At).UTC().Format(time.RFC3339),
		)

		if err := commit(ctx); err != nil {
			log.Error("commit", "err", err)
		}
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
