package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/campusmarket/recommender/internal/domain"
)

// NewMongoClient connects to the document store and verifies connectivity
// before returning.
func NewMongoClient(ctx context.Context, opts Options) (Client, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}
	if opts.Database == "" {
		return nil, errors.New("store database is required")
	}

	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
	}
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to store: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("verify store connectivity: %w", err)
	}

	return &mongoClient{
		client: client,
		db:     client.Database(opts.Database),
	}, nil
}

type mongoClient struct {
	client *mongo.Client
	db     *mongo.Database
}

func (c *mongoClient) FetchUsers(ctx context.Context) ([]domain.User, error) {
	var docs []userDoc
	if err := c.fetchAll(ctx, CollectionUsers, &docs); err != nil {
		return nil, err
	}
	users := make([]domain.User, len(docs))
	for i, d := range docs {
		users[i] = d.toDomain()
	}
	return users, nil
}

func (c *mongoClient) FetchPurchases(ctx context.Context) ([]domain.Purchase, error) {
	var docs []purchaseDoc
	if err := c.fetchAll(ctx, CollectionPurchases, &docs); err != nil {
		return nil, err
	}
	purchases := make([]domain.Purchase, len(docs))
	for i, d := range docs {
		purchases[i] = d.toDomain()
	}
	return purchases, nil
}

func (c *mongoClient) FetchListings(ctx context.Context) ([]domain.MarketplaceItem, error) {
	var docs []listingDoc
	if err := c.fetchAll(ctx, CollectionMarketplace, &docs); err != nil {
		return nil, err
	}
	listings := make([]domain.MarketplaceItem, len(docs))
	for i, d := range docs {
		listings[i] = d.toDomain()
	}
	return listings, nil
}

func (c *mongoClient) fetchAll(ctx context.Context, collection string, target any) error {
	cursor, err := c.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("query %s: %w", collection, err)
	}
	if err := cursor.All(ctx, target); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (c *mongoClient) WriteRecommendations(ctx context.Context, rec domain.Recommendations) error {
	now := time.Now().UTC()
	if err := c.replaceRecommendations(ctx, CollectionFriendsRecommendations, rec.UserID, rec.FromFriends, now); err != nil {
		return err
	}
	return c.replaceRecommendations(ctx, CollectionUserRecommendations, rec.UserID, rec.ForUser, now)
}

func (c *mongoClient) replaceRecommendations(ctx context.Context, collection, userID string, entries []domain.RecommendationEntry, now time.Time) error {
	if entries == nil {
		entries = []domain.RecommendationEntry{}
	}
	doc := recommendationsDoc{
		UserID:           userID,
		RecommendedItems: entries,
		UpdatedAt:        now,
	}
	_, err := c.db.Collection(collection).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: userID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("write %s for user %s: %w", collection, userID, err)
	}
	return nil
}

func (c *mongoClient) FetchRecommendations(ctx context.Context, userID string) (domain.Recommendations, error) {
	rec := domain.Recommendations{UserID: userID}

	friends, err := c.fetchRecommendationList(ctx, CollectionFriendsRecommendations, userID)
	if err != nil {
		return domain.Recommendations{}, err
	}
	rec.FromFriends = friends

	forUser, err := c.fetchRecommendationList(ctx, CollectionUserRecommendations, userID)
	if err != nil {
		return domain.Recommendations{}, err
	}
	rec.ForUser = forUser

	return rec, nil
}

func (c *mongoClient) fetchRecommendationList(ctx context.Context, collection, userID string) ([]domain.RecommendationEntry, error) {
	var doc recommendationsDoc
	err := c.db.Collection(collection).FindOne(ctx, bson.D{{Key: "_id", Value: userID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s for user %s: %w", collection, userID, err)
	}
	return doc.RecommendedItems, nil
}

func (c *mongoClient) SeedUsers(ctx context.Context, users []domain.User) error {
	models := make([]mongo.WriteModel, len(users))
	for i, u := range users {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: u.ID}}).
			SetReplacement(u).
			SetUpsert(true)
	}
	return c.bulkWrite(ctx, CollectionUsers, models)
}

func (c *mongoClient) SeedListings(ctx context.Context, listings []domain.MarketplaceItem) error {
	models := make([]mongo.WriteModel, len(listings))
	for i, item := range listings {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: item.ID}}).
			SetReplacement(item).
			SetUpsert(true)
	}
	return c.bulkWrite(ctx, CollectionMarketplace, models)
}

func (c *mongoClient) SeedPurchases(ctx context.Context, purchases []domain.Purchase) error {
	// Purchase rows have no natural document key; seeding replaces the whole
	// collection so reruns stay idempotent.
	coll := c.db.Collection(CollectionPurchases)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear %s: %w", CollectionPurchases, err)
	}
	if len(purchases) == 0 {
		return nil
	}
	docs := make([]any, len(purchases))
	for i, p := range purchases {
		docs[i] = p
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed %s: %w", CollectionPurchases, err)
	}
	return nil
}

func (c *mongoClient) bulkWrite(ctx context.Context, collection string, models []mongo.WriteModel) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := c.db.Collection(collection).BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("seed %s: %w", collection, err)
	}
	return nil
}

func (c *mongoClient) VerifyConnectivity(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *mongoClient) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
