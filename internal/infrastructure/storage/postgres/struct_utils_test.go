package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"salemargin/internal/core/id"
	"salemargin/internal/core/types"
	"salemargin/internal/domain/catalogs/analytic"
	"salemargin/internal/domain/catalogs/product"
)

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[analytic.Account]()

	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "overhead")
	assert.NotContains(t, cols, "")
}

func TestStructToMap(t *testing.T) {
	account := analytic.NewAccount("AA-001", "Overhead EU")
	account.Overhead = types.MustMoney("50")

	m := StructToMap(account)

	assert.Equal(t, account.ID, m["id"])
	assert.Equal(t, "AA-001", m["code"])
	assert.Equal(t, "Overhead EU", m["name"])
	assert.Equal(t, account.Overhead, m["overhead"])
	assert.Equal(t, 1, m["version"])
}

func TestStructToMap_MatchesExtractedColumns(t *testing.T) {
	p := product.NewProduct("PRD-001", "Widget", id.New())
	m := StructToMap(p)

	for _, col := range ExtractDBColumns[product.Product]() {
		_, ok := m[col]
		assert.True(t, ok, "column %q missing from map", col)
	}
}
