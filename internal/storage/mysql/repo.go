package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"stayhub/internal/adapters/observability"
	"stayhub/internal/domain"
)

const service = "mysql"

// Repo implements domain.Backend over one MySQL table per entity. Column
// names match the record keys; see migrations/ for the schema.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func observe(op string, start time.Time, err error) {
	status := 200
	if err != nil {
		status = 500
	}
	observability.ObserveExternal(service, op, status, time.Since(start))
}

func (r *Repo) Fetch(ctx context.Context, table string, q domain.Query) (out []domain.Record, err error) {
	start := time.Now()
	defer func() { observe("fetch", start, err) }()
	stmt, args, err := renderSelect(table, q)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, backendErr("fetch", table, err)
	}
	defer rows.Close()
	out, err = scanRecords(rows)
	if err != nil {
		return nil, backendErr("fetch", table, err)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, table string, id int64, fields []string) (domain.Record, error) {
	start := time.Now()
	rec, err := r.get(ctx, table, id, fields)
	observe("get", start, err)
	return rec, err
}

func (r *Repo) get(ctx context.Context, table string, id int64, fields []string) (domain.Record, error) {
	stmt, err := renderGetByID(table, fields)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, id)
	if err != nil {
		return nil, backendErr("get", table, err)
	}
	defer rows.Close()
	recs, err := scanRecords(rows)
	if err != nil {
		return nil, backendErr("get", table, err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// Create inserts each record on its own; a failing row does not stop the
// others and is reported in its Result.
func (r *Repo) Create(ctx context.Context, table string, recs []domain.Record) ([]domain.Result, error) {
	start := time.Now()
	defer func() { observe("create", start, nil) }()
	out := make([]domain.Result, 0, len(recs))
	for _, rec := range recs {
		stmt, args, err := renderInsert(table, rec)
		if err != nil {
			return nil, err
		}
		res, err := r.db.ExecContext(ctx, stmt, args...)
		if err != nil {
			out = append(out, domain.Result{Message: err.Error()})
			continue
		}
		id, err := res.LastInsertId()
		if err != nil {
			out = append(out, domain.Result{Message: err.Error()})
			continue
		}
		row, err := r.get(ctx, table, id, nil)
		if err != nil || row == nil {
			out = append(out, domain.Result{Message: fmt.Sprintf("read back record %d: %v", id, err)})
			continue
		}
		out = append(out, domain.Result{Success: true, Data: row})
	}
	return out, nil
}

func (r *Repo) Update(ctx context.Context, table string, recs []domain.Record) ([]domain.Result, error) {
	start := time.Now()
	defer func() { observe("update", start, nil) }()
	out := make([]domain.Result, 0, len(recs))
	for _, rec := range recs {
		id, ok := recordID(rec)
		if !ok {
			out = append(out, domain.Result{Message: "Id is required"})
			continue
		}
		stmt, args, err := renderUpdate(table, id, rec)
		if err != nil {
			return nil, err
		}
		if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
			out = append(out, domain.Result{Message: err.Error()})
			continue
		}
		// RowsAffected is 0 for unchanged rows, so existence is checked by reading back.
		row, err := r.get(ctx, table, id, nil)
		switch {
		case err != nil:
			out = append(out, domain.Result{Message: err.Error()})
		case row == nil:
			out = append(out, domain.Result{Message: fmt.Sprintf("record %d does not exist", id)})
		default:
			out = append(out, domain.Result{Success: true, Data: row})
		}
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, table string, ids []int64) ([]domain.Result, error) {
	start := time.Now()
	defer func() { observe("delete", start, nil) }()
	stmt, err := renderDelete(table)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Result, 0, len(ids))
	for _, id := range ids {
		res, err := r.db.ExecContext(ctx, stmt, id)
		if err != nil {
			out = append(out, domain.Result{Message: err.Error()})
			continue
		}
		if n, _ := res.RowsAffected(); n == 0 {
			out = append(out, domain.Result{Message: fmt.Sprintf("record %d does not exist", id)})
			continue
		}
		out = append(out, domain.Result{Success: true, Data: domain.Record{domain.FieldID: id}})
	}
	return out, nil
}

func recordID(r domain.Record) (int64, bool) {
	switch v := r[domain.FieldID].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), v == float64(int64(v))
	}
	return 0, false
}

func backendErr(op, table string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.BackendError{Op: op, Table: table, Message: err.Error()}
}

// scanRecords reads rows into records. Text comes back from the driver as
// []byte and is turned into strings; DATE columns become YYYY-MM-DD.
func scanRecords(rows *sql.Rows) ([]domain.Record, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	out := []domain.Record{}
	for rows.Next() {
		vals := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(domain.Record, len(types))
		for i, ct := range types {
			rec[ct.Name()] = normalize(ct.DatabaseTypeName(), vals[i])
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func normalize(dbType string, v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		if strings.EqualFold(dbType, "DATE") {
			return x.Format("2006-01-02")
		}
		return x.UTC().Format(time.RFC3339Nano)
	}
	return v
}
