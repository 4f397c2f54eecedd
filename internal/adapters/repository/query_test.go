package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/ports"
)

func TestPostgresSelect(t *testing.T) {
	q := ports.Query{}.
		Where("assignee", ports.OpEq, "kim").
		Where("year", ports.OpEq, 2026).
		Where("dueDate", ports.OpGte, "2026-10-01").
		Where("dueDate", ports.OpPrefix, "2026-10").
		Desc("dueDate").
		Take(5)

	query, args, err := buildPostgresSelect(entities.CollectionTasks, q)
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT id, data, created_at, updated_at FROM records WHERE collection = $1`+
			` AND data->'assignee' = $2::jsonb`+
			` AND data->'year' = $3::jsonb`+
			` AND (data->>'dueDate') COLLATE "C" >= $4`+
			` AND starts_with((data->>'dueDate') COLLATE "C", $5)`+
			` ORDER BY (data->>'dueDate') COLLATE "C" DESC, id ASC LIMIT $6`,
		query)
	assert.Equal(t, []interface{}{"tasks", `"kim"`, `2026`, "2026-10-01", "2026-10", 5}, args)
}

func TestPostgresSelectColumns(t *testing.T) {
	query, args, err := buildPostgresSelect(entities.CollectionComments, ports.Query{}.
		Where("id", ports.OpEq, "abc").
		Asc("createdAt"))
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT id, data, created_at, updated_at FROM records WHERE collection = $1 AND id = $2 ORDER BY created_at ASC, id ASC`,
		query)
	assert.Equal(t, []interface{}{"comments", "abc"}, args)
}

func TestSQLiteWhere(t *testing.T) {
	where, args, err := buildWhere(sqliteDialect{}, "kpis", []ports.Condition{
		{Field: "quarter", Op: ports.OpEq, Value: entities.Q4},
		{Field: "postDate", Op: ports.OpLt, Value: "2026-10-14"},
	})
	require.NoError(t, err)

	assert.Equal(t, `collection = ? AND json_extract(data, '$.quarter') = ? AND json_extract(data, '$.postDate') < ?`, where)
	assert.Equal(t, []interface{}{"kpis", "Q4", "2026-10-14"}, args)
}

func TestSQLitePrefixBindsOnce(t *testing.T) {
	where, args, err := buildWhere(sqliteDialect{}, "tasks", []ports.Condition{
		{Field: "dueDate", Op: ports.OpPrefix, Value: "2026-10"},
	})
	require.NoError(t, err)

	assert.Equal(t, `collection = ? AND substr(json_extract(data, '$.dueDate'), 1, 7) = ?`, where)
	assert.Equal(t, strings.Count(where, "?"), len(args))
	assert.Equal(t, []interface{}{"tasks", "2026-10"}, args)
}

func TestPrefixOnColumnRejected(t *testing.T) {
	_, _, err := buildWhere(sqliteDialect{}, "tasks", []ports.Condition{
		{Field: "createdAt", Op: ports.OpPrefix, Value: "2026"},
	})
	assert.Error(t, err)
}

func TestQueryBuildersDoNotAlias(t *testing.T) {
	base := ports.Query{}.Where("a", ports.OpEq, 1)
	left := base.Where("b", ports.OpEq, 2)
	right := base.Where("c", ports.OpEq, 3)

	assert.Len(t, base.Conditions, 1)
	assert.Equal(t, "b", left.Conditions[1].Field)
	assert.Equal(t, "c", right.Conditions[1].Field)
}
