package mysql

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"stayhub/internal/domain"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// quote backtick-quotes a table or column name after checking it. Names
// come from code, never from callers, but `user` and friends need quoting.
func quote(name string) (string, error) {
	if !identRe.MatchString(name) {
		return "", fmt.Errorf("mysql: invalid identifier %q", name)
	}
	return "`" + name + "`", nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func renderCondition(c domain.Condition) (string, []any, error) {
	col, err := quote(c.Field)
	if err != nil {
		return "", nil, err
	}
	if len(c.Values) == 0 {
		return "", nil, fmt.Errorf("mysql: condition on %s has no values", c.Field)
	}
	switch c.Operator {
	case domain.OpEqualTo:
		if len(c.Values) == 1 {
			return col + " = ?", c.Values, nil
		}
		return col + " IN (" + placeholders(len(c.Values)) + ")", c.Values, nil
	case domain.OpNotEqualTo:
		return "(" + col + " IS NULL OR " + col + " NOT IN (" + placeholders(len(c.Values)) + "))", c.Values, nil
	case domain.OpGreaterThanOrEqualTo:
		return col + " >= ?", c.Values[:1], nil
	case domain.OpLessThanOrEqualTo:
		return col + " <= ?", c.Values[:1], nil
	case domain.OpContains:
		parts := make([]string, 0, len(c.Values))
		args := make([]any, 0, len(c.Values))
		for _, v := range c.Values {
			parts = append(parts, col+" LIKE ?")
			args = append(args, "%"+likeEscaper.Replace(fmt.Sprint(v))+"%")
		}
		if len(parts) == 1 {
			return parts[0], args, nil
		}
		return "(" + strings.Join(parts, " OR ") + ")", args, nil
	}
	return "", nil, fmt.Errorf("mysql: unsupported operator %q", c.Operator)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// renderSelect turns a query into one SELECT. Rows are always tie-broken
// by Id so paging is stable.
func renderSelect(table string, q domain.Query) (string, []any, error) {
	tbl, err := quote(table)
	if err != nil {
		return "", nil, err
	}
	cols, err := projection(q.Fields)
	if err != nil {
		return "", nil, err
	}

	var (
		where []string
		args  []any
	)
	for _, c := range q.Where {
		s, a, err := renderCondition(c)
		if err != nil {
			return "", nil, err
		}
		where = append(where, s)
		args = append(args, a...)
	}
	for _, g := range q.Groups {
		if len(g.Conditions) == 0 {
			continue
		}
		var ors []string
		for _, c := range g.Conditions {
			s, a, err := renderCondition(c)
			if err != nil {
				return "", nil, err
			}
			ors = append(ors, s)
			args = append(args, a...)
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	var b strings.Builder
	b.WriteString("SELECT " + cols + " FROM " + tbl)
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	order := make([]string, 0, len(q.OrderBy)+1)
	byID := false
	for _, o := range q.OrderBy {
		col, err := quote(o.Field)
		if err != nil {
			return "", nil, err
		}
		dir := "ASC"
		if o.Direction == domain.Desc {
			dir = "DESC"
		}
		order = append(order, col+" "+dir)
		byID = byID || o.Field == domain.FieldID
	}
	if !byID {
		order = append(order, "`Id` ASC")
	}
	b.WriteString(" ORDER BY " + strings.Join(order, ", "))

	if q.Paging != nil && q.Paging.Limit > 0 {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, q.Paging.Limit, max(q.Paging.Offset, 0))
	}
	return b.String(), args, nil
}

// projection always includes Id. An empty field list selects everything.
func projection(fields []string) (string, error) {
	if len(fields) == 0 {
		return "*", nil
	}
	seen := map[string]bool{domain.FieldID: true}
	cols := []string{"`Id`"}
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		c, err := quote(f)
		if err != nil {
			return "", err
		}
		cols = append(cols, c)
	}
	return strings.Join(cols, ", "), nil
}

func renderGetByID(table string, fields []string) (string, error) {
	tbl, err := quote(table)
	if err != nil {
		return "", err
	}
	cols, err := projection(fields)
	if err != nil {
		return "", err
	}
	return "SELECT " + cols + " FROM " + tbl + " WHERE `Id` = ?", nil
}

// sortedKeys gives a deterministic column order for writes. Id is left out.
func sortedKeys(r domain.Record) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		if k == domain.FieldID {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func renderInsert(table string, r domain.Record) (string, []any, error) {
	tbl, err := quote(table)
	if err != nil {
		return "", nil, err
	}
	keys := sortedKeys(r)
	if len(keys) == 0 {
		return "INSERT INTO " + tbl + " () VALUES ()", nil, nil
	}
	cols := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		c, err := quote(k)
		if err != nil {
			return "", nil, err
		}
		cols = append(cols, c)
		args = append(args, r[k])
	}
	return "INSERT INTO " + tbl + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders(len(keys)) + ")", args, nil
}

func renderUpdate(table string, id int64, r domain.Record) (string, []any, error) {
	tbl, err := quote(table)
	if err != nil {
		return "", nil, err
	}
	keys := sortedKeys(r)
	sets := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		if k == domain.FieldCreatedOn || k == domain.FieldModifiedOn {
			continue
		}
		c, err := quote(k)
		if err != nil {
			return "", nil, err
		}
		sets = append(sets, c+" = ?")
		args = append(args, r[k])
	}
	sets = append(sets, "`ModifiedOn` = CURRENT_TIMESTAMP(3)")
	args = append(args, id)
	return "UPDATE " + tbl + " SET " + strings.Join(sets, ", ") + " WHERE `Id` = ?", args, nil
}

func renderDelete(table string) (string, error) {
	tbl, err := quote(table)
	if err != nil {
		return "", err
	}
	return "DELETE FROM " + tbl + " WHERE `Id` = ?", nil
}
