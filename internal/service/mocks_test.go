package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/eospatial/geoforestry/internal/model"
)

// MockForestryStore mocks the ForestryStore interface
type MockForestryStore struct {
	mock.Mock
}

func (m *MockForestryStore) Create(ctx context.Context, forestry model.Forestry) (model.Forestry, error) {
	args := m.Called(ctx, forestry)
	return args.Get(0).(model.Forestry), args.Error(1)
}

func (m *MockForestryStore) Update(ctx context.Context, forestry model.Forestry) (model.Forestry, error) {
	args := m.Called(ctx, forestry)
	return args.Get(0).(model.Forestry), args.Error(1)
}

func (m *MockForestryStore) GetByID(ctx context.Context, id uuid.UUID) (model.Forestry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Forestry), args.Error(1)
}

func (m *MockForestryStore) GetByName(ctx context.Context, name string) (model.Forestry, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Forestry), args.Error(1)
}

func (m *MockForestryStore) GetByRegion(ctx context.Context, region string) (model.Forestry, error) {
	args := m.Called(ctx, region)
	return args.Get(0).(model.Forestry), args.Error(1)
}

func (m *MockForestryStore) GetByToken(ctx context.Context, token string) (model.Forestry, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Forestry), args.Error(1)
}

func (m *MockForestryStore) GetAll(ctx context.Context) ([]model.Forestry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Forestry), args.Error(1)
}

func (m *MockForestryStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockForestryStore) ExistsByNameExcludingID(ctx context.Context, name string, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockForestryStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockForestryStore) DeleteByName(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockForestryStore) ListByExpirationRange(ctx context.Context, start, end time.Time) ([]model.Forestry, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]model.Forestry), args.Error(1)
}

// MockGeometryStore mocks the GeometryStore interface
type MockGeometryStore struct {
	mock.Mock
}

func (m *MockGeometryStore) Upsert(ctx context.Context, forestryID uuid.UUID, geom model.MultiPolygon) error {
	args := m.Called(ctx, forestryID, geom)
	return args.Error(0)
}

func (m *MockGeometryStore) DeleteByForestry(ctx context.Context, forestryID uuid.UUID) error {
	args := m.Called(ctx, forestryID)
	return args.Error(0)
}

func (m *MockGeometryStore) GetByForestry(ctx context.Context, forestryID uuid.UUID) (model.MultiPolygon, bool, error) {
	args := m.Called(ctx, forestryID)
	return args.Get(0).(model.MultiPolygon), args.Bool(1), args.Error(2)
}

// MockDocumentStorage mocks the DocumentStorage interface
type MockDocumentStorage struct {
	mock.Mock
}

func (m *MockDocumentStorage) Upload(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *MockDocumentStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockDocumentStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockDocumentStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockTokenIssuer mocks the TokenIssuer interface
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue() string {
	args := m.Called()
	return args.String(0)
}

// MockSessionManager mocks the SessionManager interface
type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) GenerateAccessToken(userID uuid.UUID, role model.Role) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func (m *MockSessionManager) ParseAccessToken(token string) (uuid.UUID, model.Role, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Get(1).(model.Role), args.Error(2)
}

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash []byte) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
