package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// filterAttribute is the message attribute that scopes a subscription to
// one user. All users share a single topic; the broker-side filter policy
// does the fan-out targeting, so we never create topics dynamically.
const filterAttribute = "target"

// SNSSubscriptions manages email subscriptions on one shared SNS topic.
// It owns no persistent state: the subscription ARN it returns must be
// kept by the caller, and the broker keeps its own bookkeeping.
type SNSSubscriptions struct {
	client   *sns.Client
	topicARN string
	log      *slog.Logger
}

func NewSNSSubscriptions(client *sns.Client, topicARN string) *SNSSubscriptions {
	return &SNSSubscriptions{
		client:   client,
		topicARN: topicARN,
		log:      slog.With("component", "notify"),
	}
}

// Subscribe registers the email on the shared topic with a filter policy
// matching only this user. The returned ARN is the opaque handle the
// caller persists.
func (s *SNSSubscriptions) Subscribe(ctx context.Context, userID, email string) (string, error) {
	policy, err := json.Marshal(map[string][]string{filterAttribute: {userID}})
	if err != nil {
		return "", fmt.Errorf("marshal filter policy: %w", err)
	}

	out, err := s.client.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn:              aws.String(s.topicARN),
		Protocol:              aws.String("email"),
		Endpoint:              aws.String(email),
		ReturnSubscriptionArn: true,
		Attributes: map[string]string{
			"FilterPolicy": string(policy),
		},
	})
	if err != nil {
		return "", err
	}

	s.log.Info("subscribed", "userId", userID, "subscriptionId", aws.ToString(out.SubscriptionArn))
	return aws.ToString(out.SubscriptionArn), nil
}

// Unsubscribe retires a previously issued handle. A handle the broker no
// longer knows is not an error: the subscription is gone either way.
func (s *SNSSubscriptions) Unsubscribe(ctx context.Context, subscriptionID string) error {
	_, err := s.client.Unsubscribe(ctx, &sns.UnsubscribeInput{
		SubscriptionArn: aws.String(subscriptionID),
	})
	if err != nil {
		var nf *types.NotFoundException
		if errors.As(err, &nf) {
			s.log.Warn("unsubscribe: handle already retired", "subscriptionId", subscriptionID)
			return nil
		}
		return err
	}

	s.log.Info("unsubscribed", "subscriptionId", subscriptionID)
	return nil
}

// Publish sends message to every subscriber whose filter matches userID.
// Delivery is at-least-once and asynchronous; nothing here deduplicates.
func (s *SNSSubscriptions) Publish(ctx context.Context, userID, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			filterAttribute: {
				DataType:    aws.String("String"),
				StringValue: aws.String(userID),
			},
		},
	})
	return err
}
