package svc

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fitrank/internal/config"
	"fitrank/internal/logic"
	"fitrank/internal/model"
)

const connectTimeout = 10 * time.Second

type ServiceContext struct {
	Config          config.Config
	RedisClient     *redis.Client
	FirestoreClient *firestore.Client
	MongoClient     *mongo.Client
	RosterIndex     *model.RosterIndexModel
	RankingLogic    *logic.RankingLogic
	IndexLogic      *logic.IndexLogic
	TierLogic       *logic.TierLogic
}

func NewServiceContext(c config.Config) (*ServiceContext, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	svcCtx := &ServiceContext{
		Config: c,
		RedisClient: redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Pass,
			DB:       c.Redis.DB,
		}),
	}
	svcCtx.RosterIndex = model.NewRosterIndexModel(svcCtx.RedisClient, c.Redis.Prefix)

	needs := map[string]bool{c.Roster.Source: true, c.Roster.SyncFrom: true}
	if needs[config.SourceFirestore] {
		if c.Firestore.ProjectID == "" {
			return nil, fmt.Errorf("firestore project id is required")
		}
		client, err := firestore.NewClient(ctx, c.Firestore.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("create firestore client: %w", err)
		}
		svcCtx.FirestoreClient = client
	}
	if needs[config.SourceMongo] {
		if c.Mongo.URI == "" {
			return nil, fmt.Errorf("mongo uri is required")
		}
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.Mongo.URI))
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		svcCtx.MongoClient = client
	}

	source, err := svcCtx.fetcher(c.Roster.Source)
	if err != nil {
		return nil, err
	}
	syncFrom, err := svcCtx.fetcher(c.Roster.SyncFrom)
	if err != nil {
		return nil, err
	}
	svcCtx.RankingLogic = logic.NewRankingLogic(source)
	svcCtx.IndexLogic = logic.NewIndexLogic(syncFrom, svcCtx.RosterIndex)
	// 单用户查询走数据源（SyncFrom 只能是 firestore 或 mongo）
	users, ok := syncFrom.(model.UserLookup)
	if !ok {
		return nil, fmt.Errorf("roster source %q cannot look up users", c.Roster.SyncFrom)
	}
	svcCtx.TierLogic = logic.NewTierLogic(users)
	return svcCtx, nil
}

func (s *ServiceContext) fetcher(source string) (model.RosterFetcher, error) {
	switch source {
	case config.SourceFirestore:
		return model.NewFirestoreRosterModel(s.FirestoreClient, s.Config.Firestore.Collection), nil
	case config.SourceMongo:
		coll := s.MongoClient.Database(s.Config.Mongo.Database).Collection(s.Config.Mongo.Collection)
		return model.NewMongoRosterModel(coll), nil
	case config.SourceRedis:
		return s.RosterIndex, nil
	default:
		return nil, fmt.Errorf("unknown roster source %q", source)
	}
}

// Close 释放所有外部连接
func (s *ServiceContext) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if s.MongoClient != nil {
		_ = s.MongoClient.Disconnect(ctx)
	}
	if s.FirestoreClient != nil {
		_ = s.FirestoreClient.Close()
	}
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}
}
