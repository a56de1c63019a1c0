package db

import (
	"context"
	"time"

	"whispr/feedback-api/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Mongo implements Store on top of the users collection. Every user is a
// single document carrying its embedded messages, so all writes are
// per-document updates with last-write-wins semantics.
type Mongo struct {
	client *mongo.Client
	users  *mongo.Collection
}

var _ Store = (*Mongo)(nil)

func (m *Mongo) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User

	err := m.users.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (m *Mongo) FindVerifiedByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.findOne(ctx, bson.M{"username": username, "isVerified": true})
}

func (m *Mongo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.findOne(ctx, bson.M{"username": username})
}

func (m *Mongo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.findOne(ctx, bson.M{"email": email})
}

func (m *Mongo) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	return m.findOne(ctx, bson.M{"_id": oid})
}

func (m *Mongo) CreateUser(ctx context.Context, u *model.User) error {
	result, err := m.users.InsertOne(ctx, u)
	if err != nil {
		return err
	}

	u.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (m *Mongo) ReissueVerification(ctx context.Context, id string, passwordHash, code string, expiry time.Time) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := m.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"password":         passwordHash,
			"verifyCode":       code,
			"verifyCodeExpiry": expiry,
		},
	})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *Mongo) MarkVerified(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := m.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"isVerified": true},
	})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *Mongo) SetAcceptingMessages(ctx context.Context, id string, accepting bool) (*model.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u model.User
	err = m.users.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isAcceptingMessages": accepting}},
		opts,
	).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (m *Mongo) AppendMessage(ctx context.Context, id string, msg model.Message) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := m.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$push": bson.M{"messages": msg},
	})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (m *Mongo) MessagesSortedDesc(ctx context.Context, id string) ([]model.Message, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	// Ordering is imposed here and not at storage time: unwind the
	// embedded array, sort by createdAt descending, regroup.
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}},
		bson.D{{Key: "$unwind", Value: "$messages"}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "messages.createdAt", Value: -1}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "messages", Value: bson.D{{Key: "$push", Value: "$messages"}}},
		}}},
	}

	cursor, err := m.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Messages []model.Message `bson:"messages"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	// $unwind drops users with an empty messages array entirely, which
	// just means there's nothing to list.
	if len(results) == 0 {
		return []model.Message{}, nil
	}

	return results[0].Messages, nil
}

func (m *Mongo) RemoveMessage(ctx context.Context, userID, messageID string) (bool, error) {
	uid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return false, ErrNotFound
	}

	mid, err := bson.ObjectIDFromHex(messageID)
	if err != nil {
		return false, nil
	}

	result, err := m.users.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{
		"$pull": bson.M{"messages": bson.M{"_id": mid}},
	})
	if err != nil {
		return false, err
	}

	return result.ModifiedCount > 0, nil
}

func (m *Mongo) DeleteStaleUnverified(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := m.users.DeleteMany(ctx, bson.M{
		"isVerified":       false,
		"verifyCodeExpiry": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
