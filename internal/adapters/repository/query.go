package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/teamboard/core/internal/ports"
)

const recordsTable = "records"

var fieldPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

var rangeOps = map[ports.Op]string{
	ports.OpGte: ">=",
	ports.OpLte: "<=",
	ports.OpLt:  "<",
}

// columns maps the store-owned fields onto real columns.
var columns = map[string]string{
	ports.FieldID:        "id",
	ports.FieldCreatedAt: "created_at",
	ports.FieldUpdatedAt: "updated_at",
}

// dialect renders field references and placeholders for one backend.
type dialect interface {
	placeholder(n int) string
	// textField is the string form of a document field, compared byte-wise.
	textField(field string) string
	// eq compares a document field to a Go value with type awareness.
	eq(field string, ph string) (string, func(interface{}) (interface{}, error))
	// prefix renders a starts-with test binding value to the single placeholder ph.
	prefix(expr, ph, value string) string
}

type sqliteDialect struct{}

func (sqliteDialect) placeholder(int) string { return "?" }

func (sqliteDialect) textField(field string) string {
	return fmt.Sprintf("json_extract(data, '$.%s')", field)
}

func (d sqliteDialect) eq(field, ph string) (string, func(interface{}) (interface{}, error)) {
	return fmt.Sprintf("%s = %s", d.textField(field), ph), sqliteValue
}

func (sqliteDialect) prefix(expr, ph, value string) string {
	return fmt.Sprintf("substr(%s, 1, %d) = %s", expr, utf8.RuneCountInString(value), ph)
}

// sqliteValue maps Go values onto what json_extract yields for the same JSON.
func sqliteValue(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return normalizeScalar(v)
	}
}

type postgresDialect struct{}

func (postgresDialect) placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (postgresDialect) textField(field string) string {
	return fmt.Sprintf(`(data->>'%s') COLLATE "C"`, field)
}

func (postgresDialect) eq(field, ph string) (string, func(interface{}) (interface{}, error)) {
	return fmt.Sprintf("data->'%s' = %s::jsonb", field, ph), func(v interface{}) (interface{}, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
}

func (postgresDialect) prefix(expr, ph, _ string) string {
	return fmt.Sprintf("starts_with(%s, %s)", expr, ph)
}

// normalizeScalar flattens named string and numeric types through JSON so the driver sees
// a plain string, float64 or nil.
func normalizeScalar(v interface{}) (interface{}, error) {
	switch v.(type) {
	case nil, string, int, int64, float64:
		return v, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func textValue(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return strings.Trim(string(b), `"`)
}

func checkField(field string) error {
	if !fieldPattern.MatchString(field) {
		return fmt.Errorf("invalid field name %q", field)
	}
	return nil
}

// buildWhere renders the collection filter plus every condition. Placeholders start at 1.
func buildWhere(d dialect, collection string, conds []ports.Condition) (string, []interface{}, error) {
	clauses := []string{"collection = " + d.placeholder(1)}
	args := []interface{}{collection}

	for _, c := range conds {
		if err := checkField(c.Field); err != nil {
			return "", nil, err
		}
		ph := d.placeholder(len(args) + 1)

		col, isColumn := columns[c.Field]
		var expr string
		if isColumn {
			expr = col
		} else {
			expr = d.textField(c.Field)
		}

		switch c.Op {
		case ports.OpEq:
			if isColumn {
				clauses = append(clauses, fmt.Sprintf("%s = %s", col, ph))
				args = append(args, c.Value)
				continue
			}
			clause, conv := d.eq(c.Field, ph)
			v, err := conv(c.Value)
			if err != nil {
				return "", nil, fmt.Errorf("encode condition on %s: %w", c.Field, err)
			}
			clauses = append(clauses, clause)
			args = append(args, v)
		case ports.OpGte, ports.OpLte, ports.OpLt:
			clauses = append(clauses, fmt.Sprintf("%s %s %s", expr, rangeOps[c.Op], ph))
			if isColumn {
				args = append(args, c.Value)
			} else {
				args = append(args, textValue(c.Value))
			}
		case ports.OpPrefix:
			if isColumn {
				return "", nil, fmt.Errorf("prefix is not supported on %s", c.Field)
			}
			v := textValue(c.Value)
			clauses = append(clauses, d.prefix(expr, ph, v))
			args = append(args, v)
		default:
			return "", nil, fmt.Errorf("unsupported operator %q", c.Op)
		}
	}

	return strings.Join(clauses, " AND "), args, nil
}

// buildOrder always ends with id so equal sort keys come back in a stable order.
func buildOrder(d dialect, orders []ports.Order) (string, error) {
	if len(orders) == 0 {
		return "created_at ASC, id ASC", nil
	}
	parts := make([]string, 0, len(orders)+1)
	for _, o := range orders {
		if err := checkField(o.Field); err != nil {
			return "", err
		}
		expr, ok := columns[o.Field]
		if !ok {
			expr = d.textField(o.Field)
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, expr+" "+dir)
	}
	parts = append(parts, "id ASC")
	return strings.Join(parts, ", "), nil
}

// encodeDocument drops store-owned keys and serialises the rest.
func encodeDocument(doc ports.Document) ([]byte, error) {
	clean := make(ports.Document, len(doc))
	for k, v := range doc {
		if _, owned := columns[k]; owned {
			continue
		}
		clean[k] = v
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

func decodeDocument(b []byte) (ports.Document, error) {
	doc := ports.Document{}
	if len(b) == 0 {
		return doc, nil
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
