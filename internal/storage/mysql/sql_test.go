package mysql

import (
	"reflect"
	"testing"

	"stayhub/internal/domain"
)

func TestRenderSelect(t *testing.T) {
	q := domain.Query{
		Fields: []string{"name_c", "Id", "price_per_night_c"},
		Where: []domain.Condition{
			{Field: "star_rating_c", Operator: domain.OpEqualTo, Values: []any{int64(4), int64(5)}},
			{Field: "price_per_night_c", Operator: domain.OpGreaterThanOrEqualTo, Values: []any{100.0}},
		},
		Groups: []domain.Group{{Conditions: []domain.Condition{
			{Field: "location_city_c", Operator: domain.OpContains, Values: []any{"50%_off"}},
			{Field: "name_c", Operator: domain.OpContains, Values: []any{"bay"}},
		}}},
		OrderBy: []domain.Order{{Field: "rating_c", Direction: domain.Desc}},
		Paging:  &domain.Paging{Limit: 10, Offset: 20},
	}
	got, args, err := renderSelect("hotel", q)
	if err != nil {
		t.Fatalf("renderSelect: %v", err)
	}
	want := "SELECT `Id`, `name_c`, `price_per_night_c` FROM `hotel`" +
		" WHERE `star_rating_c` IN (?,?) AND `price_per_night_c` >= ?" +
		" AND (`location_city_c` LIKE ? OR `name_c` LIKE ?)" +
		" ORDER BY `rating_c` DESC, `Id` ASC LIMIT ? OFFSET ?"
	if got != want {
		t.Fatalf("sql:\n got %s\nwant %s", got, want)
	}
	wantArgs := []any{int64(4), int64(5), 100.0, `%50\%\_off%`, "%bay%", 10, 20}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args: got %#v want %#v", args, wantArgs)
	}
}

func TestRenderSelect_NoFilters(t *testing.T) {
	got, args, err := renderSelect("user", domain.Query{OrderBy: []domain.Order{{Field: "Id", Direction: domain.Asc}}})
	if err != nil {
		t.Fatalf("renderSelect: %v", err)
	}
	if got != "SELECT * FROM `user` ORDER BY `Id` ASC" || len(args) != 0 {
		t.Fatalf("got %q %v", got, args)
	}
}

func TestRenderSelect_NotEqualKeepsNulls(t *testing.T) {
	q := domain.Query{Where: []domain.Condition{{Field: "status_c", Operator: domain.OpNotEqualTo, Values: []any{"cancelled"}}}}
	got, _, err := renderSelect("booking", q)
	if err != nil {
		t.Fatalf("renderSelect: %v", err)
	}
	want := "SELECT * FROM `booking` WHERE (`status_c` IS NULL OR `status_c` NOT IN (?)) ORDER BY `Id` ASC"
	if got != want {
		t.Fatalf("got %s", got)
	}
}

func TestRenderRejectsBadIdentifiers(t *testing.T) {
	if _, _, err := renderSelect("hotel; DROP TABLE x", domain.Query{}); err == nil {
		t.Fatal("expected error for bad table")
	}
	q := domain.Query{Where: []domain.Condition{{Field: "name`", Operator: domain.OpEqualTo, Values: []any{"x"}}}}
	if _, _, err := renderSelect("hotel", q); err == nil {
		t.Fatal("expected error for bad column")
	}
	if _, _, err := renderInsert("hotel", domain.Record{"a b": 1}); err == nil {
		t.Fatal("expected error for bad insert column")
	}
}

func TestRenderInsertAndUpdate(t *testing.T) {
	stmt, args, err := renderInsert("review", domain.Record{"title_c": "Nice", "rating_c": 5, "Id": int64(9)})
	if err != nil {
		t.Fatalf("renderInsert: %v", err)
	}
	if stmt != "INSERT INTO `review` (`rating_c`, `title_c`) VALUES (?,?)" {
		t.Fatalf("insert: %s", stmt)
	}
	if !reflect.DeepEqual(args, []any{5, "Nice"}) {
		t.Fatalf("insert args: %v", args)
	}

	stmt, args, err = renderUpdate("booking", 7, domain.Record{"status_c": "cancelled", "Id": int64(7), "CreatedOn": "x"})
	if err != nil {
		t.Fatalf("renderUpdate: %v", err)
	}
	if stmt != "UPDATE `booking` SET `status_c` = ?, `ModifiedOn` = CURRENT_TIMESTAMP(3) WHERE `Id` = ?" {
		t.Fatalf("update: %s", stmt)
	}
	if !reflect.DeepEqual(args, []any{"cancelled", int64(7)}) {
		t.Fatalf("update args: %v", args)
	}
}

func TestRenderCondition_EmptyValues(t *testing.T) {
	if _, _, err := renderCondition(domain.Condition{Field: "x", Operator: domain.OpEqualTo}); err == nil {
		t.Fatal("expected error for condition without values")
	}
}
