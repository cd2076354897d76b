package repository

import (
	"context"
	"fmt"

	"github.com/rafaei312654/Devinillibackend2/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Teto da listagem por setor.
const maxSectorEntries = 100

type SectorRepository struct {
	coll *mongo.Collection
}

func NewSectorRepository(db *mongo.Database) *SectorRepository {
	return &SectorRepository{coll: db.Collection("sector_data")}
}

// EnsureIndexes cria o índice composto que atende a listagem por setor
// ordenada por data decrescente.
func (r *SectorRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys: bson.D{{Key: "sector_name", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index().
			SetName("sector_name_date"),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("create index sector_name_date: %w", err)
	}
	return nil
}

// ListByName devolve os lançamentos do setor ordenados por data decrescente.
// A ordenação é lexicográfica sobre a string de data, igual ao comportamento
// histórico: datas em formatos mistos não saem em ordem cronológica.
func (r *SectorRepository) ListByName(ctx context.Context, sectorName string) ([]models.SectorData, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(maxSectorEntries)
	cur, err := r.coll.Find(ctx, bson.M{"sector_name": sectorName}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.SectorData{}
	for cur.Next(ctx) {
		var s models.SectorData
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, cur.Err()
}

// Append insere um novo lançamento. Sem deduplicação: o mesmo setor pode
// ter vários lançamentos na mesma data.
func (r *SectorRepository) Append(ctx context.Context, s *models.SectorData) (string, error) {
	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return "", err
	}
	id, _ := res.InsertedID.(string)
	return id, nil
}

func (r *SectorRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
