package model

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fitrank/internal/types"
)

const sourceMongo = "mongo"

// MongoRosterModel 从 MongoDB 用户集合读取排行榜名单
type MongoRosterModel struct {
	Coll *mongo.Collection
}

func NewMongoRosterModel(coll *mongo.Collection) *MongoRosterModel {
	return &MongoRosterModel{Coll: coll}
}

// FetchAllUsersDescendingByXP 按 xp 降序拉取全部用户
func (m *MongoRosterModel) FetchAllUsersDescendingByXP(ctx context.Context) ([]types.UserRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "xp", Value: -1}})
	cursor, err := m.Coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, newFetchError(sourceMongo, err)
	}
	defer cursor.Close(ctx)

	var users []types.UserRecord
	if err := cursor.All(ctx, &users); err != nil {
		return nil, newFetchError(sourceMongo, err)
	}
	return users, nil
}

// GetUser 查询单个用户，不存在时返回 nil, nil
func (m *MongoRosterModel) GetUser(ctx context.Context, userID string) (*types.UserRecord, error) {
	var user types.UserRecord
	err := m.Coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, newFetchError(sourceMongo, err)
	}
	return &user, nil
}
