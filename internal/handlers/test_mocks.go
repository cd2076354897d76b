package handlers

import (
	"context"
	"errors"

	"github.com/rafaei312654/Devinillibackend2/internal/events"
	"github.com/rafaei312654/Devinillibackend2/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

type employeeRepoMock struct {
	GetAllFn    func(ctx context.Context) ([]models.Employee, error)
	CreateFn    func(ctx context.Context, e *models.Employee) (string, error)
	GetByIDFn   func(ctx context.Context, id string) (*models.Employee, error)
	SetFieldsFn func(ctx context.Context, id string, set bson.M) error
	DeleteFn    func(ctx context.Context, id string) error
}

func (m *employeeRepoMock) GetAll(ctx context.Context) ([]models.Employee, error) {
	if m.GetAllFn == nil {
		return nil, errors.New("GetAllFn not set")
	}
	return m.GetAllFn(ctx)
}
func (m *employeeRepoMock) Create(ctx context.Context, e *models.Employee) (string, error) {
	if m.CreateFn == nil {
		return "", errors.New("CreateFn not set")
	}
	return m.CreateFn(ctx, e)
}
func (m *employeeRepoMock) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	if m.GetByIDFn == nil {
		return nil, errors.New("GetByIDFn not set")
	}
	return m.GetByIDFn(ctx, id)
}
func (m *employeeRepoMock) SetFields(ctx context.Context, id string, set bson.M) error {
	if m.SetFieldsFn == nil {
		return errors.New("SetFieldsFn not set")
	}
	return m.SetFieldsFn(ctx, id, set)
}
func (m *employeeRepoMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return errors.New("DeleteFn not set")
	}
	return m.DeleteFn(ctx, id)
}

type sectorRepoMock struct {
	ListByNameFn func(ctx context.Context, sectorName string) ([]models.SectorData, error)
	AppendFn     func(ctx context.Context, s *models.SectorData) (string, error)
}

func (m *sectorRepoMock) ListByName(ctx context.Context, sectorName string) ([]models.SectorData, error) {
	if m.ListByNameFn == nil {
		return nil, errors.New("ListByNameFn not set")
	}
	return m.ListByNameFn(ctx, sectorName)
}
func (m *sectorRepoMock) Append(ctx context.Context, s *models.SectorData) (string, error) {
	if m.AppendFn == nil {
		return "", errors.New("AppendFn not set")
	}
	return m.AppendFn(ctx, s)
}

type pubMock struct {
	PublishFn func(ctx context.Context, ev events.Event) error
	CloseFn   func() error
}

func (p *pubMock) Publish(ctx context.Context, ev events.Event) error {
	if p.PublishFn == nil {
		return nil
	}
	return p.PublishFn(ctx, ev)
}
func (p *pubMock) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}
