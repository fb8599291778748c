package docstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200", "test", time.Second, "User")
	assert.Error(t, err)
}

// Runs against a real deployment when MONGO_TEST_URI is set.
func TestCounter_CountAll(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()

	counter, err := Connect(ctx, uri, "apifind_test", 5*time.Second, "User", "Lojista")
	require.NoError(t, err)
	defer counter.Close(ctx)

	db := counter.client.Database("apifind_test")
	require.NoError(t, db.Drop(ctx))
	_, err = db.Collection("User").InsertMany(ctx, []interface{}{bson.M{"nome": "a"}, bson.M{"nome": "b"}})
	require.NoError(t, err)
	_, err = db.Collection("Lojista").InsertOne(ctx, bson.M{"nome": "c"})
	require.NoError(t, err)

	total, err := counter.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
