package model

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fitrank/internal/types"
)

const sourceFirestore = "firestore"

// FirestoreDocument 文档快照中读取用户需要的部分
type FirestoreDocument interface {
	ID() string
	DataTo(v any) error
}

// FirestoreDocumentIterator 文档迭代器，结束时 Next 返回 iterator.Done
type FirestoreDocumentIterator interface {
	Next() (FirestoreDocument, error)
	Stop()
}

// FirestoreUsers 用户集合上的读操作
type FirestoreUsers interface {
	DocumentsByXPDesc(ctx context.Context) FirestoreDocumentIterator
	Get(ctx context.Context, id string) (FirestoreDocument, error)
}

// FirestoreRosterModel 从 Firestore 的用户集合读取排行榜名单
type FirestoreRosterModel struct {
	Users FirestoreUsers
}

func NewFirestoreRosterModel(client *firestore.Client, collection string) *FirestoreRosterModel {
	if collection == "" {
		collection = "users"
	}
	return &FirestoreRosterModel{Users: &firestoreCollection{ref: client.Collection(collection)}}
}

// FetchAllUsersDescendingByXP 按 xp 降序拉取全部用户
func (m *FirestoreRosterModel) FetchAllUsersDescendingByXP(ctx context.Context) ([]types.UserRecord, error) {
	iter := m.Users.DocumentsByXPDesc(ctx)
	defer iter.Stop()

	var users []types.UserRecord
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, newFetchError(sourceFirestore, err)
		}
		user, err := decodeUserDoc(doc)
		if err != nil {
			return nil, newFetchError(sourceFirestore, err)
		}
		users = append(users, user)
	}
	return users, nil
}

// GetUser 查询单个用户，不存在时返回 nil, nil
func (m *FirestoreRosterModel) GetUser(ctx context.Context, userID string) (*types.UserRecord, error) {
	doc, err := m.Users.Get(ctx, userID)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, newFetchError(sourceFirestore, err)
	}
	user, err := decodeUserDoc(doc)
	if err != nil {
		return nil, newFetchError(sourceFirestore, err)
	}
	return &user, nil
}

func decodeUserDoc(doc FirestoreDocument) (types.UserRecord, error) {
	var user types.UserRecord
	if err := doc.DataTo(&user); err != nil {
		return types.UserRecord{}, err
	}
	user.ID = doc.ID()
	return user, nil
}

type firestoreCollection struct {
	ref *firestore.CollectionRef
}

// DocumentsByXPDesc 注意：Firestore 排序查询不返回缺少 xp 字段的文档，
// 这些用户不会出现在名单里（排名为 0），写入用户文档时需保证 xp 字段存在
func (c *firestoreCollection) DocumentsByXPDesc(ctx context.Context) FirestoreDocumentIterator {
	return &firestoreIterator{iter: c.ref.OrderBy("xp", firestore.Desc).Documents(ctx)}
}

func (c *firestoreCollection) Get(ctx context.Context, id string) (FirestoreDocument, error) {
	snap, err := c.ref.Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}
	return firestoreSnapshot{snap: snap}, nil
}

type firestoreIterator struct {
	iter *firestore.DocumentIterator
}

func (it *firestoreIterator) Next() (FirestoreDocument, error) {
	snap, err := it.iter.Next()
	if err != nil {
		return nil, err
	}
	return firestoreSnapshot{snap: snap}, nil
}

func (it *firestoreIterator) Stop() {
	it.iter.Stop()
}

type firestoreSnapshot struct {
	snap *firestore.DocumentSnapshot
}

func (s firestoreSnapshot) ID() string {
	return s.snap.Ref.ID
}

func (s firestoreSnapshot) DataTo(v any) error {
	return s.snap.DataTo(v)
}
