//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/eospatial/geoforestry/internal/model"
	repo "github.com/eospatial/geoforestry/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgis/postgis:15-3.4-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "geoforestry_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/geoforestry_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func testForestry(name string) model.Forestry {
	expires := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)
	return model.Forestry{
		ID:             uuid.New(),
		Name:           name,
		Region:         "Akmola",
		MapStyleURL:    "https://maps.example.com/style.json",
		MapBoxToken:    "pk.test",
		Center:         model.GeoCoordinate{Latitude: 53.28, Longitude: 69.39},
		Token:          uuid.NewString(),
		TokenExpiresOn: &expires,
	}
}

func testGeometry() model.MultiPolygon {
	return model.MultiPolygon{
		Polygons: []model.Ring{{
			{Lon: 69.3, Lat: 53.2},
			{Lon: 69.5, Lat: 53.2},
			{Lon: 69.5, Lat: 53.4},
			{Lon: 69.3, Lat: 53.4},
			{Lon: 69.3, Lat: 53.2},
		}},
	}
}

func TestForestryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	fr := repo.NewForestryRepository(conn)

	f := testForestry("Kokshetau-" + uuid.NewString())
	saved, err := fr.Create(ctx, f)
	require.NoError(t, err)
	require.Equal(t, f.ID, saved.ID)
	require.Equal(t, f.Name, saved.Name)
	require.NotNil(t, saved.TokenExpiresOn)
	require.False(t, saved.CreatedAt.IsZero())

	byID, err := fr.GetByID(ctx, f.ID)
	require.NoError(t, err)
	require.Equal(t, f.Name, byID.Name)
	require.InDelta(t, f.Center.Latitude, byID.Center.Latitude, 1e-9)

	byName, err := fr.GetByName(ctx, f.Name)
	require.NoError(t, err)
	require.Equal(t, f.ID, byName.ID)

	byToken, err := fr.GetByToken(ctx, f.Token)
	require.NoError(t, err)
	require.Equal(t, f.ID, byToken.ID)

	exists, err := fr.ExistsByName(ctx, f.Name)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = fr.ExistsByNameExcludingID(ctx, f.Name, f.ID)
	require.NoError(t, err)
	require.False(t, exists)

	saved.Region = "Pavlodar"
	updated, err := fr.Update(ctx, saved)
	require.NoError(t, err)
	require.Equal(t, "Pavlodar", updated.Region)

	all, err := fr.GetAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)

	start := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)
	inRange, err := fr.ListByExpirationRange(ctx, start, end)
	require.NoError(t, err)
	require.NotEmpty(t, inRange)

	require.NoError(t, fr.DeleteByID(ctx, f.ID))
	_, err = fr.GetByID(ctx, f.ID)
	require.ErrorIs(t, err, model.ErrNotFound)

	require.ErrorIs(t, fr.DeleteByID(ctx, f.ID), model.ErrNotFound)
}

func TestForestryRepository_DeleteByName(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	fr := repo.NewForestryRepository(conn)

	f := testForestry("Burabay-" + uuid.NewString())
	_, err = fr.Create(ctx, f)
	require.NoError(t, err)

	require.NoError(t, fr.DeleteByName(ctx, f.Name))
	require.ErrorIs(t, fr.DeleteByName(ctx, f.Name), model.ErrNotFound)
}

func TestGeometryRepository_UpsertRoundtrip(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	fr := repo.NewForestryRepository(conn)
	gr := repo.NewGeometryRepository(conn)

	f := testForestry("Geometry-" + uuid.NewString())
	_, err = fr.Create(ctx, f)
	require.NoError(t, err)

	_, found, err := gr.GetByForestry(ctx, f.ID)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, gr.Upsert(ctx, f.ID, testGeometry()))

	got, found, err := gr.GetByForestry(ctx, f.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got.Polygons, 1)
	require.Len(t, got.Polygons[0], 5)
	require.InDelta(t, 69.3, got.Polygons[0][0].Lon, 1e-6)
	require.InDelta(t, 53.2, got.Polygons[0][0].Lat, 1e-6)

	// Second upsert replaces the stored boundary in place.
	smaller := model.MultiPolygon{
		Polygons: []model.Ring{{
			{Lon: 69.35, Lat: 53.25},
			{Lon: 69.45, Lat: 53.25},
			{Lon: 69.45, Lat: 53.35},
			{Lon: 69.35, Lat: 53.25},
		}},
	}
	require.NoError(t, gr.Upsert(ctx, f.ID, smaller))

	got, found, err = gr.GetByForestry(ctx, f.ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, got.Polygons[0], 4)

	require.NoError(t, gr.DeleteByForestry(ctx, f.ID))
	require.NoError(t, gr.DeleteByForestry(ctx, f.ID))

	_, found, err = gr.GetByForestry(ctx, f.ID)
	require.NoError(t, err)
	require.False(t, found)
}

func TestGeometryRepository_CascadeOnForestryDelete(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	fr := repo.NewForestryRepository(conn)
	gr := repo.NewGeometryRepository(conn)

	f := testForestry("Cascade-" + uuid.NewString())
	_, err = fr.Create(ctx, f)
	require.NoError(t, err)
	require.NoError(t, gr.Upsert(ctx, f.ID, testGeometry()))

	require.NoError(t, fr.DeleteByID(ctx, f.ID))

	_, found, err := gr.GetByForestry(ctx, f.ID)
	require.NoError(t, err)
	require.False(t, found)
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := model.User{
		ID:           uuid.New(),
		Username:     "admin-" + uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: []byte("$2a$10$fakehashfakehashfakehash"),
		Role:         model.RoleSuperAdmin,
	}
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)
	require.Equal(t, model.RoleSuperAdmin, saved.Role)

	byUsername, err := ur.GetByUsername(ctx, u.Username)
	require.NoError(t, err)
	require.Equal(t, u.ID, byUsername.ID)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Username, byID.Username)

	exists, err := ur.ExistsByUsername(ctx, u.Username)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = ur.ExistsByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, ur.UpdatePassword(ctx, u.ID, []byte("$2a$10$newhashnewhashnewhashnew")))
	require.ErrorIs(t, ur.UpdatePassword(ctx, uuid.New(), []byte("x")), model.ErrNotFound)

	_, err = ur.GetByUsername(ctx, "nobody-"+uuid.NewString())
	require.ErrorIs(t, err, model.ErrNotFound)
}
