package apper_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"stayhub/internal/adapters/apper"
	"stayhub/internal/domain"
	"stayhub/internal/query"
)

func newClient(t *testing.T, url string) *apper.Client {
	t.Helper()
	cl, err := apper.New(url, "proj-1", "pk-1", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl
}

func TestClient_Fetch_WireFormat(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tables/hotel_c/fetch" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("X-Apper-Project-Id") != "proj-1" || r.Header.Get("X-Apper-Public-Key") != "pk-1" {
			t.Errorf("missing auth headers: %v", r.Header)
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    []map[string]any{{"Id": 7, "name_c": "Harbor Inn"}},
		})
	}))
	defer ts.Close()

	q, err := query.New("name_c").
		Eq("star_rating_c", int64(4), int64(5)).
		AnyContains("bos", "location_city_c", "name_c").
		OrderBy("price_per_night_c", domain.Asc).
		Page(10, 20).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rs, err := newClient(t, ts.URL).Fetch(ctx, domain.TableHotel, q)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rs) != 1 || rs[0]["name_c"] != "Harbor Inn" {
		t.Fatalf("unexpected records: %+v", rs)
	}

	fields := body["fields"].([]any)
	if fields[0].(map[string]any)["field"].(map[string]any)["Name"] != "name_c" {
		t.Fatalf("fields: %v", body["fields"])
	}
	where := body["where"].([]any)[0].(map[string]any)
	if where["FieldName"] != "star_rating_c" || where["Operator"] != "EqualTo" || len(where["Values"].([]any)) != 2 {
		t.Fatalf("where: %v", where)
	}
	group := body["whereGroups"].([]any)[0].(map[string]any)
	if group["operator"] != "OR" || len(group["subGroups"].([]any)) != 2 {
		t.Fatalf("whereGroups: %v", group)
	}
	sub := group["subGroups"].([]any)[0].(map[string]any)["conditions"].([]any)[0].(map[string]any)
	if sub["fieldName"] != "location_city_c" || sub["operator"] != "Contains" {
		t.Fatalf("sub condition: %v", sub)
	}
	ob := body["orderBy"].([]any)[0].(map[string]any)
	if ob["fieldName"] != "price_per_night_c" || ob["sorttype"] != "ASC" {
		t.Fatalf("orderBy: %v", ob)
	}
	pg := body["pagingInfo"].(map[string]any)
	if pg["limit"].(float64) != 10 || pg["offset"].(float64) != 20 {
		t.Fatalf("pagingInfo: %v", pg)
	}
}

func TestClient_FailureIsNotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "maintenance"})
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).Fetch(context.Background(), domain.TableReview, domain.Query{})
	var be *domain.BackendError
	if !errors.As(err, &be) || be.Message != "maintenance" {
		t.Fatalf("expected BackendError(maintenance), got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected exactly one attempt, got %d", n)
	}
}

func TestClient_SuccessFalseEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "table not found"})
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).Fetch(context.Background(), "nope", domain.Query{})
	var be *domain.BackendError
	if !errors.As(err, &be) || be.Op != "fetch" || be.Message != "table not found" {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestClient_GetByID_Absent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tables/booking_c/records/42" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": nil})
	}))
	defer ts.Close()

	rec, err := newClient(t, ts.URL).GetByID(context.Background(), domain.TableBooking, 42, domain.BookingFields)
	if err != nil || rec != nil {
		t.Fatalf("got %v, %v; want nil, nil", rec, err)
	}
}

func TestClient_Create_PerRecordResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p struct {
			Records []map[string]any `json:"records"`
		}
		_ = json.NewDecoder(r.Body).Decode(&p)
		if len(p.Records) != 2 {
			t.Errorf("records sent = %d", len(p.Records))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"results": []map[string]any{
				{"success": true, "data": map[string]any{"Id": 1}},
				{"success": false, "message": "name_c is required"},
			},
		})
	}))
	defer ts.Close()

	res, err := newClient(t, ts.URL).Create(context.Background(), domain.TableHotel,
		[]domain.Record{{"name_c": "A"}, {}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(res) != 2 || !res[0].Success || res[1].Success || res[1].Message != "name_c is required" {
		t.Fatalf("unexpected results: %+v", res)
	}
}

func TestClient_Delete_SendsRecordIds(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p map[string]any
		_ = json.NewDecoder(r.Body).Decode(&p)
		ids, _ := p["RecordIds"].([]any)
		if len(ids) != 1 || ids[0].(float64) != 5 {
			t.Errorf("RecordIds = %v", p["RecordIds"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer ts.Close()

	res, err := newClient(t, ts.URL).Delete(context.Background(), domain.TableUser, []int64{5})
	if err != nil || len(res) != 1 || !res[0].Success {
		t.Fatalf("delete: %v %+v", err, res)
	}
}

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := apper.New("http://x", "", "", 1); err == nil {
		t.Fatal("expected error without credentials")
	}
}
