package repository

import (
	"context"
	"log"
	"time"

	"github.com/docmind-ai/multirag-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DocumentRepo is the registry of ingested documents. A document appears here
// as soon as its upload is accepted, with status "ingesting", and flips to
// "ready" only after its chunks are stored in the vector index.
type DocumentRepo interface {
	CreateDocument(ctx context.Context, doc *types.DocumentRecord) error
	GetDocument(ctx context.Context, id string) (*types.DocumentRecord, error)
	UpdateStatus(ctx context.Context, id, status string, unitCount, chunkCount int) error
	ListDocuments(ctx context.Context, limit, offset int) ([]*types.DocumentRecord, error)
	CountDocuments(ctx context.Context, status string) (int64, error)
}

type documentRepo struct {
	collection *mongo.Collection
}

func NewDocumentRepo(db *mongo.Database) DocumentRepo {
	// check if collection does not exist, create one
	collectionNames, err := db.ListCollectionNames(context.Background(), bson.D{})
	if err != nil {
		panic(err)
	}
	collectionExists := false
	for _, name := range collectionNames {
		if name == "documents" {
			collectionExists = true
			break
		}
	}
	collection := db.Collection("documents")
	if !collectionExists {
		indexes := []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "status", Value: 1},
				},
			},
			{
				Keys: bson.D{
					{Key: "created_at", Value: -1},
				},
			},
		}

		_, err = collection.Indexes().CreateMany(context.Background(), indexes)
		if err != nil {
			log.Printf("Error creating indexes: %v", err)
			return nil
		}
	}

	return &documentRepo{
		collection: collection,
	}
}

func (r *documentRepo) CreateDocument(ctx context.Context, doc *types.DocumentRecord) error {
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

func (r *documentRepo) GetDocument(ctx context.Context, id string) (*types.DocumentRecord, error) {
	var doc types.DocumentRecord
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, id, status string, unitCount, chunkCount int) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "unit_count", Value: unitCount},
		{Key: "chunk_count", Value: chunkCount},
		{Key: "updated_at", Value: time.Now().Unix()},
	}}}
	_, err := r.collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	return err
}

func (r *documentRepo) ListDocuments(ctx context.Context, limit, offset int) ([]*types.DocumentRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset))
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*types.DocumentRecord
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepo) CountDocuments(ctx context.Context, status string) (int64, error) {
	filter := bson.D{}
	if status != "" {
		filter = bson.D{{Key: "status", Value: status}}
	}
	return r.collection.CountDocuments(ctx, filter)
}
