package repository

import (
	"context"
	"errors"

	"github.com/rafaei312654/Devinillibackend2/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("not found")

// Teto da listagem geral; o sistema não pagina além disso.
const maxEmployees = 1000

type EmployeeRepository struct {
	coll *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{coll: db.Collection("employees")}
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]models.Employee, error) {
	opts := options.Find().SetLimit(maxEmployees)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []models.Employee{}
	for cur.Next(ctx) {
		var e models.Employee
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, cur.Err()
}

func (r *EmployeeRepository) Create(ctx context.Context, e *models.Employee) (string, error) {
	res, err := r.coll.InsertOne(ctx, e)
	if err != nil {
		return "", err
	}
	id, _ := res.InsertedID.(string) // _id é o uuid gerado em models.NewEmployee
	return id, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	var e models.Employee
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// SetFields aplica um $set parcial. Um set vazio é no-op com sucesso
// (o Mongo rejeita {"$set": {}}, então nem chega no banco).
func (r *EmployeeRepository) SetFields(ctx context.Context, id string, set bson.M) error {
	if len(set) == 0 {
		return nil
	}
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
