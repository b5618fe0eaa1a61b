package book

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterConds_OnlyPresentFieldsBecomePredicates(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.Empty(t, filterConds(Filter{}))
	})

	t.Run("single field", func(t *testing.T) {
		conds := filterConds(Filter{Title: "Lord"})
		require.Len(t, conds, 1)

		sql, args, err := dialect.From("books").
			Select(goqu.COUNT(goqu.Star())).
			Where(conds...).
			Prepared(true).
			ToSQL()
		require.NoError(t, err)
		assert.Contains(t, sql, `"title" ILIKE`)
		assert.Equal(t, []interface{}{"%Lord%"}, args)
	})

	t.Run("all fields are ANDed", func(t *testing.T) {
		conds := filterConds(Filter{Title: "Lord", Author: "Tolkien", ISBN: "978"})
		require.Len(t, conds, 3)

		sql, args, err := dialect.From("books").
			Select(goqu.COUNT(goqu.Star())).
			Where(conds...).
			Prepared(true).
			ToSQL()
		require.NoError(t, err)
		assert.Contains(t, sql, " AND ")
		assert.NotContains(t, sql, " OR ")
		assert.Equal(t, []interface{}{"%Lord%", "%Tolkien%", "%978%"}, args)
	})
}
