package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trimworks/flashing/pkg/cache"
	"github.com/trimworks/flashing/pkg/core/profile"
	"github.com/trimworks/flashing/pkg/errors"
	"github.com/trimworks/flashing/pkg/io"
)

// Default MongoDB locations.
const (
	DefaultDatabase   = "orders"
	DefaultCollection = "diagram_sets"
)

// MongoStore reads diagram sets from a MongoDB collection. Documents use the
// [io.RawSet] field names and are keyed by "orderId".
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	opts   []io.Option
}

// MongoOptions selects the database and collection.
type MongoOptions struct {
	Database   string
	Collection string
	Convert    []io.Option
}

// NewMongoStore connects to uri and pings the server.
func NewMongoStore(ctx context.Context, uri string, mo MongoOptions) (*MongoStore, error) {
	if mo.Database == "" {
		mo.Database = DefaultDatabase
	}
	if mo.Collection == "" {
		mo.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "mongo connect")
	}
	if err := retry(ctx, func() error { return client.Ping(ctx, nil) }); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "mongo ping")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(mo.Database).Collection(mo.Collection),
		opts:   mo.Convert,
	}, nil
}

func (s *MongoStore) Load(ctx context.Context, orderID string) (profile.DiagramSet, []io.Warning, error) {
	if err := errors.ValidateOrderID(orderID); err != nil {
		return profile.DiagramSet{}, nil, err
	}

	var raw io.RawSet
	err := retry(ctx, func() error {
		return s.coll.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&raw)
	})
	switch {
	case stderrors.Is(err, mongo.ErrNoDocuments):
		return profile.DiagramSet{}, nil, errors.New(errors.ErrCodeOrderNotFound, "order %s not found", orderID)
	case cache.IsRetryable(err):
		return profile.DiagramSet{}, nil, errors.Wrap(errors.ErrCodeNetwork, err, "load order %s", orderID)
	case err != nil:
		return profile.DiagramSet{}, nil, fmt.Errorf("load order %s: %w", orderID, err)
	}

	set, warnings := io.Convert(raw, s.opts...)
	if set.ID == "" {
		set.ID = orderID
	}
	return set, warnings, nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "orderId", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *MongoStore) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

// retry runs fn with backoff, retrying network errors and timeouts only.
func retry(ctx context.Context, fn func() error) error {
	return cache.RetryWithBackoff(ctx, func() error {
		err := fn()
		if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
			return cache.Retryable(err)
		}
		return err
	})
}

var _ Store = (*MongoStore)(nil)
