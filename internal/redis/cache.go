package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/JoelKishanX/payment/internal/models"
)

const transactionViewKeyPrefix = "transaction:view:"

// TransactionCache is a JSON-backed Redis cache of transaction records,
// keyed by transaction id. Cache misses and write failures are non-fatal:
// the durable store remains the source of truth.
type TransactionCache struct {
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewTransactionCache creates a cache backed by the provided Redis client.
// Pass ttl 0 for keys that should not expire.
func NewTransactionCache(client *goredis.Client, ttl time.Duration, logger *slog.Logger) *TransactionCache {
	return &TransactionCache{client: client, ttl: ttl, logger: logger}
}

// Get retrieves a cached transaction. Returns (nil, false) on any miss or
// deserialisation error.
func (c *TransactionCache) Get(ctx context.Context, id string) (*models.Transaction, bool) {
	data, err := c.client.Get(ctx, transactionViewKeyPrefix+id).Result()
	if err != nil {
		return nil, false
	}
	var tx models.Transaction
	if err := json.Unmarshal([]byte(data), &tx); err != nil {
		return nil, false
	}
	return &tx, true
}

// Set stores a transaction record under its id.
func (c *TransactionCache) Set(ctx context.Context, tx *models.Transaction) {
	data, err := json.Marshal(tx)
	if err != nil {
		c.logger.Error("transaction cache marshal failed", "transactionId", tx.TransactionID, "error", err)
		return
	}
	if err := c.client.Set(ctx, transactionViewKeyPrefix+tx.TransactionID, data, c.ttl).Err(); err != nil {
		c.logger.Error("transaction cache write failed", "transactionId", tx.TransactionID, "error", err)
	}
}

// Delete evicts a transaction from the cache, forcing the next read to the
// durable store.
func (c *TransactionCache) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, transactionViewKeyPrefix+id).Err(); err != nil {
		c.logger.Error("transaction cache delete failed", "transactionId", id, "error", err)
	}
}
