// File: database/repository/schedule/mongo.go
package scheduleRepo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotboard/config"
	"slotboard/database"
	"slotboard/models"
)

// slotDoc wraps a slot with its date and an insertion sequence so that
// per-date ordering survives the round trip through the collection.
type slotDoc struct {
	Date string      `bson:"date"`
	Seq  int64       `bson:"seq"`
	Slot models.Slot `bson:"slot"`
}

type mongoScheduleRepo struct {
	coll *mongo.Collection
}

// NewMongoScheduleRepo constructs a Mongo-backed ScheduleRepository.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	coll := db.Collection("slots")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}, {Key: "seq", Value: 1}},
	}
	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Printf("schedule repo: index creation failed: %v", err)
	}
	return &mongoScheduleRepo{coll: coll}
}

func (r *mongoScheduleRepo) GetAll(ctx context.Context) (models.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "seq", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []slotDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make(models.Schedule)
	for _, doc := range docs {
		out[doc.Date] = append(out[doc.Date], doc.Slot)
	}
	return out, nil
}

func (r *mongoScheduleRepo) GetByDate(ctx context.Context, date string) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"date": date}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []slotDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	slots := make([]models.Slot, 0, len(docs))
	for _, doc := range docs {
		slots = append(slots, doc.Slot)
	}
	return slots, nil
}

func (r *mongoScheduleRepo) Append(ctx context.Context, date string, slot models.Slot) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := slotDoc{Date: date, Seq: time.Now().UnixNano(), Slot: slot}
	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

func (r *mongoScheduleRepo) RemoveAt(ctx context.Context, date string, index int) (models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if index < 0 {
		return models.Slot{}, ErrSlotNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}).
		SetSkip(int64(index)).SetLimit(1)
	cursor, err := r.coll.Find(ctx, bson.M{"date": date}, opts)
	if err != nil {
		return models.Slot{}, err
	}
	defer cursor.Close(ctx)

	var docs []slotDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return models.Slot{}, err
	}
	if len(docs) == 0 {
		return models.Slot{}, ErrSlotNotFound
	}

	target := docs[0]
	if _, err := r.coll.DeleteOne(ctx, bson.M{"date": target.Date, "seq": target.Seq}); err != nil {
		return models.Slot{}, err
	}
	return target.Slot, nil
}
