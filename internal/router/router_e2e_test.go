//go:build integration

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/clock"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/config"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/infra"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/model"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/repository"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/router"
	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/sync/errgroup"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	client *http.Client // carries the session cookie after login
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, e.server.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Suite setup ──────────────────────────────────────────────────────────────

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("winepick_test"),
		tcPostgres.WithUsername("winepick"),
		tcPostgres.WithPassword("winepick"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgC) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rdC) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)
	cfg := &config.Config{
		Env:                "test",
		BaseURL:            "https://vinos.example.com",
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		SessionCookieName:  "winepick_session",
		CORSOrigin:         "http://localhost:5173",
		LoginRateLimit:     1000,
		PublicRateLimit:    1000,
		Timezone:           "America/Argentina/Buenos_Aires",
		Loc:                loc,
	}

	require.NoError(t, infra.EjecutarMigraciones(cfg.DatabaseURL))

	db, err := infra.NewDatabase(cfg.DatabaseURL, false)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	hash, err := service.HashPassword("clave-e2e")
	require.NoError(t, err)
	require.NoError(t, repository.NewAdministradorRepository(db).Guardar(ctx,
		&model.Administrador{Username: "admin", Nombre: "Admin E2E", PasswordHash: hash, Activo: true}))

	reloj := clock.NewFijo(time.Date(2024, 6, 1, 12, 0, 0, 0, loc))
	srv := httptest.NewServer(router.NewWithClock(cfg, db, rdb, reloj))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	env := &testEnv{server: srv, client: &http.Client{Jar: jar}}

	resp := env.do(t, http.MethodPost, "/v1/auth/login", map[string]string{"username": "admin", "password": "clave-e2e"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	return env
}

func crearProducto(t *testing.T, env *testEnv, body map[string]any) uint {
	t.Helper()
	resp := env.do(t, http.MethodPost, "/v1/admin/productos", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p struct {
		ID uint `json:"id"`
	}
	decodeJSON(t, resp, &p)
	return p.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_PromotionPricesPublicLookup(t *testing.T) {
	env := setupTestEnv(t)

	id := crearProducto(t, env, map[string]any{
		"public_code": "MAL-001", "name": "Malbec Reserva", "drink_type": "vino",
		"winery_distillery": "Bodega Norte", "vintage_year": 2020, "base_price": "1000.00",
	})

	resp := env.do(t, http.MethodPost, "/v1/admin/promociones", map[string]any{
		"product_id": id, "promotion_type": "porcentaje", "parameter_value": "20",
		"visible_text": "20% OFF", "start_at": "2024-01-01 00:00:00", "end_at": "2024-12-31 23:59:59",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/v1/public/productos/MAL-001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p struct {
		PrecioFinal    string `json:"final_price"`
		PrecioOriginal string `json:"original_price"`
		Promocion      *struct {
			Texto string `json:"text"`
		} `json:"promotion"`
	}
	decodeJSON(t, resp, &p)
	assert.True(t, decimal.RequireFromString(p.PrecioFinal).Equal(decimal.NewFromInt(800)), p.PrecioFinal)
	assert.True(t, decimal.RequireFromString(p.PrecioOriginal).Equal(decimal.NewFromInt(1000)), p.PrecioOriginal)
	require.NotNil(t, p.Promocion)
	assert.Equal(t, "20% OFF", p.Promocion.Texto)

	// Second overlapping promotion is rejected with the blocking one echoed back.
	resp = env.do(t, http.MethodPost, "/v1/admin/promociones", map[string]any{
		"product_id": id, "promotion_type": "porcentaje", "parameter_value": "10",
		"visible_text": "10% OFF", "start_at": "2024-06-01 00:00:00",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var conflicto struct {
		Conflicto struct {
			TextoVisible string `json:"visible_text"`
		} `json:"conflicto"`
	}
	decodeJSON(t, resp, &conflicto)
	assert.Equal(t, "20% OFF", conflicto.Conflicto.TextoVisible)

	// The lookup counted as a scan.
	resp = env.do(t, http.MethodGet, "/v1/admin/metricas", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var m struct {
		MasEscaneados []struct {
			Codigo   string `json:"public_code"`
			Cantidad int64  `json:"count"`
		} `json:"top_scanned"`
	}
	decodeJSON(t, resp, &m)
	require.NotEmpty(t, m.MasEscaneados)
	assert.Equal(t, "MAL-001", m.MasEscaneados[0].Codigo)
}

func TestE2E_SearchFieldPrecision(t *testing.T) {
	env := setupTestEnv(t)

	for _, p := range []struct{ codigo, nombre string }{
		{"ABC", "Malbec Reserva"},
		{"ABC-2", "Gran Malbec"},
	} {
		crearProducto(t, env, map[string]any{
			"public_code": p.codigo, "name": p.nombre, "drink_type": "vino",
			"winery_distillery": "Bodega " + p.codigo, "base_price": "500",
		})
	}

	buscar := func(query string) []string {
		resp := env.do(t, http.MethodGet, "/v1/public/productos?"+query, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var r struct {
			Productos []struct {
				Codigo string `json:"public_code"`
			} `json:"products"`
			Total int64 `json:"total"`
		}
		decodeJSON(t, resp, &r)
		codigos := make([]string, len(r.Productos))
		for i, p := range r.Productos {
			codigos[i] = p.Codigo
		}
		assert.EqualValues(t, len(codigos), r.Total)
		return codigos
	}

	assert.Equal(t, []string{"ABC"}, buscar("search=Malbec&field=name"))
	assert.Equal(t, []string{"ABC"}, buscar("search=ABC&field=public_code"))
	assert.ElementsMatch(t, []string{"ABC", "ABC-2"}, buscar("search=Malbec"))
}

func TestE2E_ConcurrentPromotionCreation(t *testing.T) {
	env := setupTestEnv(t)

	id := crearProducto(t, env, map[string]any{
		"public_code": "GIN-01", "name": "Gin Patagonia", "drink_type": "gin",
		"winery_distillery": "Destileria Sur", "base_price": "2000",
	})

	var creadas, conflictos atomic.Int32
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			resp := env.do(t, http.MethodPost, "/v1/admin/promociones", map[string]any{
				"product_id": id, "promotion_type": "porcentaje", "parameter_value": "15",
				"visible_text": fmt.Sprintf("Promo %d", i), "start_at": "2024-06-01 00:00:00",
			})
			defer resp.Body.Close()
			switch resp.StatusCode {
			case http.StatusCreated:
				creadas.Add(1)
			case http.StatusConflict:
				conflictos.Add(1)
			default:
				return fmt.Errorf("status inesperado %d", resp.StatusCode)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.EqualValues(t, 1, creadas.Load())
	assert.EqualValues(t, 7, conflictos.Load())
}

func TestE2E_AdminRoutesRequireSession(t *testing.T) {
	env := setupTestEnv(t)
	anon := &testEnv{server: env.server, client: http.DefaultClient}

	resp := anon.do(t, http.MethodGet, "/v1/admin/productos", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/v1/auth/logout", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/v1/admin/productos", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
