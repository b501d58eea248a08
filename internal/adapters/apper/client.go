// Package apper talks to the hosted table backend over HTTP/JSON.
package apper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"stayhub/internal/adapters/observability"
	"stayhub/internal/domain"
)

const service = "apper"

// Client implements domain.Backend. Every call is a single POST; there
// are no retries.
type Client struct {
	base      string
	projectID string
	publicKey string
	hc        *http.Client
	rl        *rate.Limiter
}

func New(base, projectID, publicKey string, rps int) (*Client, error) {
	if projectID == "" || publicKey == "" {
		return nil, fmt.Errorf("apper project id and public key are required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		projectID: projectID,
		publicKey: publicKey,
		hc:        &http.Client{Timeout: 20 * time.Second},
		rl:        rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- wire format ----

type fieldRef struct {
	Field struct {
		Name string `json:"Name"`
	} `json:"field"`
}

type whereCond struct {
	FieldName string `json:"FieldName"`
	Operator  string `json:"Operator"`
	Values    []any  `json:"Values"`
}

type groupCond struct {
	FieldName string `json:"fieldName"`
	Operator  string `json:"operator"`
	Values    []any  `json:"values"`
}

type subGroup struct {
	Conditions []groupCond `json:"conditions"`
	Operator   string      `json:"operator"`
}

type whereGroup struct {
	Operator  string     `json:"operator"`
	SubGroups []subGroup `json:"subGroups"`
}

type orderBy struct {
	FieldName string `json:"fieldName"`
	SortType  string `json:"sorttype"`
}

type pagingInfo struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type params struct {
	Fields      []fieldRef      `json:"fields,omitempty"`
	Where       []whereCond     `json:"where,omitempty"`
	WhereGroups []whereGroup    `json:"whereGroups,omitempty"`
	OrderBy     []orderBy       `json:"orderBy,omitempty"`
	PagingInfo  *pagingInfo     `json:"pagingInfo,omitempty"`
	Records     []domain.Record `json:"records,omitempty"`
	RecordIDs   []int64         `json:"RecordIds,omitempty"`
}

type result struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    domain.Record `json:"data"`
}

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Results []result        `json:"results"`
}

// tableName maps a logical table to the backend's custom-table name.
func tableName(t string) string {
	if strings.HasSuffix(t, "_c") {
		return t
	}
	return t + "_c"
}

func fieldRefs(fields []string) []fieldRef {
	out := make([]fieldRef, 0, len(fields))
	for _, f := range fields {
		var r fieldRef
		r.Field.Name = f
		out = append(out, r)
	}
	return out
}

// encodeQuery renders a domain query into fetch parameters. Each group
// becomes one OR whereGroup with a sub-group per condition.
func encodeQuery(q domain.Query) params {
	p := params{Fields: fieldRefs(q.Fields)}
	for _, c := range q.Where {
		p.Where = append(p.Where, whereCond{FieldName: c.Field, Operator: string(c.Operator), Values: c.Values})
	}
	for _, g := range q.Groups {
		if len(g.Conditions) == 0 {
			continue
		}
		wg := whereGroup{Operator: "OR"}
		for _, c := range g.Conditions {
			wg.SubGroups = append(wg.SubGroups, subGroup{
				Conditions: []groupCond{{FieldName: c.Field, Operator: string(c.Operator), Values: c.Values}},
			})
		}
		p.WhereGroups = append(p.WhereGroups, wg)
	}
	for _, o := range q.OrderBy {
		p.OrderBy = append(p.OrderBy, orderBy{FieldName: o.Field, SortType: string(o.Direction)})
	}
	if q.Paging != nil {
		p.PagingInfo = &pagingInfo{Limit: q.Paging.Limit, Offset: q.Paging.Offset}
	}
	return p
}

// ---- domain.Backend ----

func (c *Client) Fetch(ctx context.Context, table string, q domain.Query) ([]domain.Record, error) {
	resp, err := c.call(ctx, "fetch", table, "/tables/"+tableName(table)+"/fetch", encodeQuery(q))
	if err != nil {
		return nil, err
	}
	out := []domain.Record{}
	if isNull(resp.Data) {
		return out, nil
	}
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return nil, fmt.Errorf("apper fetch %s: decode data: %w", table, err)
	}
	return out, nil
}

func (c *Client) GetByID(ctx context.Context, table string, id int64, fields []string) (domain.Record, error) {
	path := fmt.Sprintf("/tables/%s/records/%d", tableName(table), id)
	resp, err := c.call(ctx, "get", table, path, params{Fields: fieldRefs(fields)})
	if err != nil {
		return nil, err
	}
	if isNull(resp.Data) {
		return nil, nil
	}
	var rec domain.Record
	if err := json.Unmarshal(resp.Data, &rec); err != nil {
		return nil, fmt.Errorf("apper get %s: decode data: %w", table, err)
	}
	if len(rec) == 0 {
		return nil, nil
	}
	return rec, nil
}

func (c *Client) Create(ctx context.Context, table string, records []domain.Record) ([]domain.Result, error) {
	resp, err := c.call(ctx, "create", table, "/tables/"+tableName(table)+"/create", params{Records: records})
	if err != nil {
		return nil, err
	}
	return results(resp)
}

func (c *Client) Update(ctx context.Context, table string, records []domain.Record) ([]domain.Result, error) {
	resp, err := c.call(ctx, "update", table, "/tables/"+tableName(table)+"/update", params{Records: records})
	if err != nil {
		return nil, err
	}
	return results(resp)
}

func (c *Client) Delete(ctx context.Context, table string, ids []int64) ([]domain.Result, error) {
	resp, err := c.call(ctx, "delete", table, "/tables/"+tableName(table)+"/delete", params{RecordIDs: ids})
	if err != nil {
		return nil, err
	}
	return results(resp)
}

// results prefers per-record results; a bare success with one data object
// counts as a single successful record.
func results(resp response) ([]domain.Result, error) {
	if len(resp.Results) > 0 {
		out := make([]domain.Result, 0, len(resp.Results))
		for _, r := range resp.Results {
			out = append(out, domain.Result{Success: r.Success, Message: r.Message, Data: r.Data})
		}
		return out, nil
	}
	var rec domain.Record
	if !isNull(resp.Data) {
		if err := json.Unmarshal(resp.Data, &rec); err != nil {
			return nil, fmt.Errorf("apper: decode data: %w", err)
		}
	}
	return []domain.Result{{Success: true, Data: rec}}, nil
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// ---- Internals ----

// call performs one rate-limited POST and decodes the envelope. A
// success:false envelope becomes *domain.BackendError.
func (c *Client) call(ctx context.Context, op, table, path string, body params) (response, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return response{}, err
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return response{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(buf))
	if err != nil {
		return response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Apper-Project-Id", c.projectID)
	req.Header.Set("X-Apper-Public-Key", c.publicKey)
	req.Header.Set("User-Agent", "stayhub/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(service, op, 0, time.Since(start))
		if ctx.Err() != nil {
			return response{}, ctx.Err()
		}
		return response{}, &domain.BackendError{Op: op, Table: table, Message: err.Error()}
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, op, resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return response{}, &domain.BackendError{Op: op, Table: table, Message: err.Error()}
	}

	var out response
	decErr := json.Unmarshal(raw, &out)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.Message
		if decErr != nil || msg == "" {
			msg = fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		return response{}, &domain.BackendError{Op: op, Table: table, Message: msg}
	}
	if decErr != nil {
		return response{}, &domain.BackendError{Op: op, Table: table, Message: "malformed response: " + decErr.Error()}
	}
	if !out.Success {
		return response{}, &domain.BackendError{Op: op, Table: table, Message: out.Message}
	}
	return out, nil
}
