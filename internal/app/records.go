package app

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"stayhub/internal/domain"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decimalHook lets backend numbers (float, int, numeric string) land in
// decimal.Decimal fields.
func decimalHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	switch v := data.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		if v == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(v)
	case []byte:
		return decimal.NewFromString(string(v))
	}
	return nil, fmt.Errorf("cannot decode %T into decimal", data)
}

func decodeRecord[T any](r domain.Record) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
		DecodeHook:       decimalHook,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(map[string]any(r)); err != nil {
		return out, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

func decodeRecords[T any](rs []domain.Record) ([]T, error) {
	out := make([]T, 0, len(rs))
	for _, r := range rs {
		v, err := decodeRecord[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// put copies *v into r under key when v is set.
func put[T any](r domain.Record, key string, v *T) {
	if v != nil {
		r[key] = *v
	}
}

func putDecimal(r domain.Record, key string, v *decimal.Decimal) {
	if v != nil {
		r[key] = v.InexactFloat64()
	}
}

// checkResults turns per-record results into records or a *BatchError that
// keeps every failure.
func checkResults(op, table string, results []domain.Result) ([]domain.Record, error) {
	var (
		ok       = make([]domain.Record, 0, len(results))
		failures []domain.RecordFailure
	)
	for i, r := range results {
		if !r.Success {
			failures = append(failures, domain.RecordFailure{Index: i, Message: r.Message})
			continue
		}
		ok = append(ok, r.Data)
	}
	if len(failures) > 0 {
		return nil, &domain.BatchError{Op: op, Table: table, Total: len(results), Failures: failures, Succeeded: ok}
	}
	return ok, nil
}

func logFailure(op, table string, err error) error {
	log.Error().Err(err).Str("op", op).Str("table", table).Msg("backend call failed")
	return err
}

// ---- generic table access shared by the domain services ----

func fetchAll[T any](ctx context.Context, be domain.Backend, table string, q domain.Query) ([]T, error) {
	rs, err := be.Fetch(ctx, table, q)
	if err != nil {
		return nil, logFailure("fetch", table, err)
	}
	return decodeRecords[T](rs)
}

func getOne[T any](ctx context.Context, be domain.Backend, table string, id int64, fields []string) (T, error) {
	var zero T
	rec, err := be.GetByID(ctx, table, id, fields)
	if err != nil {
		return zero, logFailure("get", table, err)
	}
	if rec == nil {
		return zero, domain.NotFound(table, id)
	}
	return decodeRecord[T](rec)
}

func createMany[T any](ctx context.Context, be domain.Backend, table string, recs []domain.Record) ([]T, error) {
	results, err := be.Create(ctx, table, recs)
	if err != nil {
		return nil, logFailure("create", table, err)
	}
	ok, err := checkResults("create", table, results)
	if err != nil {
		return nil, logFailure("create", table, err)
	}
	return decodeRecords[T](ok)
}

func createOne[T any](ctx context.Context, be domain.Backend, table string, rec domain.Record) (T, error) {
	var zero T
	out, err := createMany[T](ctx, be, table, []domain.Record{rec})
	if err != nil {
		return zero, err
	}
	if len(out) == 0 {
		return zero, &domain.BackendError{Op: "create", Table: table, Message: "no result returned"}
	}
	return out[0], nil
}

func updateOne[T any](ctx context.Context, be domain.Backend, table string, id int64, rec domain.Record) (T, error) {
	var zero T
	rec[domain.FieldID] = id
	results, err := be.Update(ctx, table, []domain.Record{rec})
	if err != nil {
		return zero, logFailure("update", table, err)
	}
	ok, err := checkResults("update", table, results)
	if err != nil {
		return zero, logFailure("update", table, err)
	}
	if len(ok) == 0 {
		return zero, &domain.BackendError{Op: "update", Table: table, Message: "no result returned"}
	}
	return decodeRecord[T](ok[0])
}

func deleteOne(ctx context.Context, be domain.Backend, table string, id int64) error {
	results, err := be.Delete(ctx, table, []int64{id})
	if err != nil {
		return logFailure("delete", table, err)
	}
	if _, err := checkResults("delete", table, results); err != nil {
		return logFailure("delete", table, err)
	}
	return nil
}
