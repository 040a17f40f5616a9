package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/joluasen/Wine-Pick-QR-TFI-Final-sub000/internal/infra"

	"github.com/redis/go-redis/v9"
)

const (
	prefijoEscaneosDia = "escaneos:dia:"
	claveRanking       = "escaneos:ranking"
	retencionEscaneos  = 35 * 24 * time.Hour
	formatoDia         = "2006-01-02"
)

// ConteoDia is the number of QR lookups on one calendar day.
type ConteoDia struct {
	Fecha    string
	Cantidad int64
}

type ConteoCodigo struct {
	Codigo   string
	Cantidad int64
}

// EscaneoRepository keeps QR scan counters in Redis. Counters are advisory:
// they are never read back into catalog decisions.
type EscaneoRepository interface {
	Registrar(ctx context.Context, codigo string, en time.Time) error
	// PorDia returns dias entries ending on the day of hasta, oldest first.
	PorDia(ctx context.Context, hasta time.Time, dias int) ([]ConteoDia, error)
	MasEscaneados(ctx context.Context, n int64) ([]ConteoCodigo, error)
}

type escaneoRepo struct{ rdb *redis.Client }

func NewEscaneoRepository(rdb *redis.Client) EscaneoRepository { return &escaneoRepo{rdb: rdb} }

func claveDia(t time.Time) string { return prefijoEscaneosDia + t.Format(formatoDia) }

func (r *escaneoRepo) Registrar(ctx context.Context, codigo string, en time.Time) error {
	clave := claveDia(en)
	pipe := r.rdb.TxPipeline()
	pipe.Incr(ctx, clave)
	pipe.Expire(ctx, clave, retencionEscaneos)
	pipe.ZIncrBy(ctx, claveRanking, 1, codigo)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *escaneoRepo) PorDia(ctx context.Context, hasta time.Time, dias int) ([]ConteoDia, error) {
	if dias <= 0 {
		return nil, nil
	}
	claves := make([]string, dias)
	out := make([]ConteoDia, dias)
	for i := 0; i < dias; i++ {
		dia := hasta.AddDate(0, 0, i-dias+1)
		claves[i] = claveDia(dia)
		out[i].Fecha = dia.Format(formatoDia)
	}

	valores, err := r.rdb.MGet(ctx, claves...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range valores {
		s, ok := v.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		out[i].Cantidad = n
	}
	return out, nil
}

func (r *escaneoRepo) MasEscaneados(ctx context.Context, n int64) ([]ConteoCodigo, error) {
	if n <= 0 {
		return nil, nil
	}
	zs, err := r.rdb.ZRevRangeWithScores(ctx, claveRanking, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]ConteoCodigo, 0, len(zs))
	for _, z := range zs {
		codigo, _ := z.Member.(string)
		out = append(out, ConteoCodigo{Codigo: codigo, Cantidad: int64(z.Score)})
	}
	return out, nil
}

// ── Breaker-guarded counters ─────────────────────────────────────────────────

type escaneoProtegido struct {
	inner EscaneoRepository
	cb    *infra.CircuitBreaker
}

// NewEscaneoRepositoryConCorte guards every counter call with cb, so a Redis
// outage costs public lookups a fast ErrCircuitOpen instead of a dial timeout.
func NewEscaneoRepositoryConCorte(inner EscaneoRepository, cb *infra.CircuitBreaker) EscaneoRepository {
	return &escaneoProtegido{inner: inner, cb: cb}
}

func (r *escaneoProtegido) Registrar(ctx context.Context, codigo string, en time.Time) error {
	return r.cb.Execute(func() error { return r.inner.Registrar(ctx, codigo, en) })
}

func (r *escaneoProtegido) PorDia(ctx context.Context, hasta time.Time, dias int) ([]ConteoDia, error) {
	var out []ConteoDia
	err := r.cb.Execute(func() error {
		var err error
		out, err = r.inner.PorDia(ctx, hasta, dias)
		return err
	})
	return out, err
}

func (r *escaneoProtegido) MasEscaneados(ctx context.Context, n int64) ([]ConteoCodigo, error) {
	var out []ConteoCodigo
	err := r.cb.Execute(func() error {
		var err error
		out, err = r.inner.MasEscaneados(ctx, n)
		return err
	})
	return out, err
}
