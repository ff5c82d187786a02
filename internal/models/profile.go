package models

// Profile holds a user's notification settings. SubscriptionID is the
// broker-issued handle for the active email subscription; empty means the
// user is not subscribed. At most one handle is live per profile, and it
// always corresponds to the stored email.
type Profile struct {
	UserID         string `dynamodbav:"userId" json:"userId"`
	Email          string `dynamodbav:"email" json:"email"`
	SubscriptionID string `dynamodbav:"subscriptionId,omitempty" json:"subscriptionId,omitempty"`
}
