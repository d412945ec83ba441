package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/eospatial/geoforestry/internal/model"
	"github.com/eospatial/geoforestry/internal/service"
)

// MockForestryService mocks the ForestryService interface
type MockForestryService struct {
	mock.Mock
}

func (m *MockForestryService) Create(ctx context.Context, params model.ForestryParams, rawGeoJSON []byte) (model.Forestry, string, error) {
	args := m.Called(ctx, params, rawGeoJSON)
	return args.Get(0).(model.Forestry), args.String(1), args.Error(2)
}

func (m *MockForestryService) Update(ctx context.Context, ref model.ForestryRef, params model.ForestryParams, rawGeoJSON []byte) (model.Forestry, error) {
	args := m.Called(ctx, ref, params, rawGeoJSON)
	return args.Get(0).(model.Forestry), args.Error(1)
}

func (m *MockForestryService) Delete(ctx context.Context, ref model.ForestryRef) (bool, error) {
	args := m.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}

func (m *MockForestryService) RegenerateToken(ctx context.Context, ref model.ForestryRef, newExpiresOn *time.Time) (string, error) {
	args := m.Called(ctx, ref, newExpiresOn)
	return args.String(0), args.Error(1)
}

func (m *MockForestryService) UpdateTokenExpiration(ctx context.Context, ref model.ForestryRef, newExpiresOn *time.Time) (model.Forestry, error) {
	args := m.Called(ctx, ref, newExpiresOn)
	return args.Get(0).(model.Forestry), args.Error(1)
}

func (m *MockForestryService) AttachGeometry(ctx context.Context, ref model.ForestryRef, rawGeoJSON []byte) (model.Forestry, error) {
	args := m.Called(ctx, ref, rawGeoJSON)
	return args.Get(0).(model.Forestry), args.Error(1)
}

func (m *MockForestryService) ClearGeometry(ctx context.Context, ref model.ForestryRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockForestryService) Get(ctx context.Context, ref model.ForestryRef) (model.Forestry, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(model.Forestry), args.Error(1)
}

func (m *MockForestryService) GetByRegion(ctx context.Context, region string) (model.Forestry, error) {
	args := m.Called(ctx, region)
	return args.Get(0).(model.Forestry), args.Error(1)
}

func (m *MockForestryService) GetAll(ctx context.Context) ([]model.Forestry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Forestry), args.Error(1)
}

func (m *MockForestryService) GetGeometry(ctx context.Context, forestryID uuid.UUID) (model.MultiPolygon, bool, error) {
	args := m.Called(ctx, forestryID)
	return args.Get(0).(model.MultiPolygon), args.Bool(1), args.Error(2)
}

func (m *MockForestryService) ListByTokenExpiration(ctx context.Context, start, end *time.Time) ([]model.Forestry, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]model.Forestry), args.Error(1)
}

// MockAccessService mocks the AccessService interface
type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) Validate(ctx context.Context, token string) (model.TokenValidationResult, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.TokenValidationResult), args.Error(1)
}

func (m *MockAccessService) GetForestryByToken(ctx context.Context, token string) (model.Forestry, model.MultiPolygon, model.TokenValidationResult, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Forestry), args.Get(1).(model.MultiPolygon), args.Get(2).(model.TokenValidationResult), args.Error(3)
}

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) AddAdmin(ctx context.Context, params service.AddAdminParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockAuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	args := m.Called(ctx, userID, newPassword)
	return args.Error(0)
}
