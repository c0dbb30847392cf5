package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orgball2608/social-feed/internal/domain"
	"github.com/orgball2608/social-feed/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// settingsDocument mirrors the CMS "apiSettings" document.
type settingsDocument struct {
	ID        string              `bson:"_id"`
	LinkedIn  linkedInCredentials `bson:"linkedin"`
	UpdatedAt time.Time           `bson:"updatedAt"`
}

type linkedInCredentials struct {
	AccessToken  string     `bson:"accessToken"`
	RefreshToken string     `bson:"refreshToken"`
	ExpiresAt    *time.Time `bson:"expiresAt,omitempty"`
}

type Mongo struct {
	collection *mongo.Collection
	logger     logger.Logger
	now        func() time.Time
}

func NewMongo(collection *mongo.Collection, logger logger.Logger) *Mongo {
	return &Mongo{
		collection: collection,
		logger:     logger.WithComponent("CredentialMongoRepo"),
		now:        time.Now,
	}
}

var _ Repository = (*Mongo)(nil)

func (m *Mongo) Get(ctx context.Context) (*domain.CredentialPair, error) {
	var doc settingsDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": SettingsID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}

	return &domain.CredentialPair{
		AccessToken:  doc.LinkedIn.AccessToken,
		RefreshToken: doc.LinkedIn.RefreshToken,
		ExpiresAt:    doc.LinkedIn.ExpiresAt,
	}, nil
}

func (m *Mongo) Save(ctx context.Context, pair domain.CredentialPair) error {
	update := bson.M{"$set": bson.M{
		"linkedin": linkedInCredentials{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
			ExpiresAt:    pair.ExpiresAt,
		},
		"updatedAt": m.now().UTC(),
	}}

	_, err := m.collection.UpdateOne(ctx, bson.M{"_id": SettingsID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	m.logger.Info("Stored refreshed credentials", "expires_at", pair.ExpiresAt)
	return nil
}
