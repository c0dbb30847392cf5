package credential

import (
	"context"
	"testing"
	"time"

	"github.com/orgball2608/social-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get decodes nested linkedin fields", func(mt *mtest.T) {
		expires := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.settings", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: SettingsID},
			{Key: "linkedin", Value: bson.D{
				{Key: "accessToken", Value: "access"},
				{Key: "refreshToken", Value: "refresh"},
				{Key: "expiresAt", Value: expires},
			}},
		}))

		pair, err := NewMongo(mt.Coll, testLogger()).Get(context.Background())

		require.NoError(mt, err)
		assert.Equal(mt, "access", pair.AccessToken)
		assert.Equal(mt, "refresh", pair.RefreshToken)
		require.NotNil(mt, pair.ExpiresAt)
		assert.True(mt, expires.Equal(*pair.ExpiresAt))
	})

	mt.Run("get without document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.settings", mtest.FirstBatch))

		_, err := NewMongo(mt.Coll, testLogger()).Get(context.Background())

		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("save upserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := NewMongo(mt.Coll, testLogger()).Save(context.Background(), domain.CredentialPair{
			AccessToken:  "access",
			RefreshToken: "refresh",
		})

		require.NoError(mt, err)
	})

	mt.Run("save surfaces write errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key",
		}))

		err := NewMongo(mt.Coll, testLogger()).Save(context.Background(), domain.CredentialPair{AccessToken: "a"})

		assert.Error(mt, err)
	})
}
