//go:build e2e

package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	SpaRoomID    = 101
	SpaRoomName  = "Lotus Suite"
	SpaRoomPrice = 200_000

	VoucherCode = "WELCOME10"
)

// SeedCatalog replaces the catalog feeds with one room, one expert, one extra and one voucher.
func SeedCatalog(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx := context.Background()

	feeds := map[string][]any{
		"rooms": {
			bson.M{"_id": SpaRoomID, "name": SpaRoomName, "minCapacity": 1, "maxCapacity": 2, "pricePerHour": SpaRoomPrice},
			// numeric and string ids coexist in real feeds
			bson.M{"_id": "102", "name": "Bamboo Room", "minCapacity": 1, "maxCapacity": 4, "pricePerHour": 150_000},
		},
		"services": {
			bson.M{"_id": "exp-thai", "name": "Thai massage therapist", "price": 120_000, "category": "expert"},
			bson.M{"_id": "svc-oil", "name": "Aroma oil", "price": 30_000, "category": "extra"},
		},
		"vouchers": {
			bson.M{"code": VoucherCode, "discountType": "percent", "discountValue": 10},
		},
	}

	for name, docs := range feeds {
		coll := db.Collection(name)
		_, err := coll.DeleteMany(ctx, bson.M{})
		require.NoError(t, err, "failed to clear %s", name)
		_, err = coll.InsertMany(ctx, docs)
		require.NoError(t, err, "failed to seed %s", name)
	}
}
