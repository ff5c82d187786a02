package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CatalinMihaiIonescu/ndcd-capstone-project/internal/models"
)

// ProfileStore is the slice of the record store the profile service needs.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	PutProfile(ctx context.Context, p models.Profile) error
	DeleteProfile(ctx context.Context, userID string) error
}

// Subscriptions is the broker-side subscription lifecycle.
type Subscriptions interface {
	Subscribe(ctx context.Context, userID, email string) (string, error)
	Unsubscribe(ctx context.Context, subscriptionID string) error
}

// Profiles keeps a user's notification subscription in lock-step with
// their profile: a profile with a subscription handle always has exactly
// one, addressed to the stored email.
type Profiles struct {
	store ProfileStore
	subs  Subscriptions
	log   *slog.Logger
}

func NewProfiles(store ProfileStore, subs Subscriptions) *Profiles {
	return &Profiles{
		store: store,
		subs:  subs,
		log:   slog.With("component", "profiles"),
	}
}

// Get returns nil, nil when the user has no profile.
func (s *Profiles) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return p, nil
}

// Set creates or fully replaces the profile, migrating the subscription.
// Any existing handle is retired before the new subscribe so two handles
// are never live at once; the cost is a window with zero subscriptions,
// and if the new subscribe then fails the profile record is left
// unmodified while the user stays unsubscribed. There is no repair pass
// for that window; the Error log below is the hook for one.
func (s *Profiles) Set(ctx context.Context, userID, email string) (models.Profile, error) {
	current, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	retired := false
	if current != nil && current.SubscriptionID != "" {
		if err := s.subs.Unsubscribe(ctx, current.SubscriptionID); err != nil {
			return models.Profile{}, fmt.Errorf("%w: %v", ErrBrokerUnavailable, err)
		}
		retired = true
	}

	handle, err := s.subs.Subscribe(ctx, userID, email)
	if err != nil {
		if retired {
			s.log.Error("subscribe failed after old handle was retired; profile is unsubscribed until the next Set",
				"userId", userID, "email", email, "err", err)
		}
		return models.Profile{}, fmt.Errorf("%w: %v", ErrBrokerUnavailable, err)
	}

	p := models.Profile{
		UserID:         userID,
		Email:          email,
		SubscriptionID: handle,
	}
	if err := s.store.PutProfile(ctx, p); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return p, nil
}

// Delete retires the subscription before removing the record; once the
// record is gone the handle would be unreachable. Deleting a profile that
// does not exist is a no-op.
func (s *Profiles) Delete(ctx context.Context, userID string) error {
	current, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if current != nil && current.SubscriptionID != "" {
		if err := s.subs.Unsubscribe(ctx, current.SubscriptionID); err != nil {
			return fmt.Errorf("%w: %v", ErrBrokerUnavailable, err)
		}
	}

	if err := s.store.DeleteProfile(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
