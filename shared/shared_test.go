package shared_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"veranda/shared"
	"veranda/shared/constant"
	"veranda/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "valid true string", input: "true", expected: boolPtr(true)},
		{name: "valid false string", input: "false", expected: boolPtr(false)},
		{name: "valid 1 string", input: "1", expected: boolPtr(true)},
		{name: "valid 0 string", input: "0", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				assert.Nil(t, got)

				return
			}

			assert.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total", total: 0, limit: 10, expected: 1},
		{name: "zero limit", total: 25, limit: 0, expected: 1},
		{name: "exact division", total: 20, limit: 10, expected: 2},
		{name: "rounds up", total: 21, limit: 10, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRequest struct {
		Number string   `db:"number"`
		Price  *float64 `db:"price"`
		Status string   `db:"status"`
		Noise  string
	}

	price := 250.0
	req := updateRequest{
		Price: &price,
		Noise: "ignored, no db tag",
	}

	fields := shared.TransformFields(req, "admin-1")

	assert.Equal(t, 250.0, fields["price"])
	assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
	assert.NotContains(t, fields, "number") // zero values are skipped
	assert.NotContains(t, fields, "status")
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("room-1", "id", "rooms")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "room-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "room:get:room-1", shared.BuildCacheKey("room:get", "room-1"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}

	filtered := shared.BuildCacheKeyWithQuery("room:gets", params, dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "available", Operator: dto.FilterOperatorEq},
		},
	})
	unfiltered := shared.BuildCacheKeyWithQuery("room:gets", params, dto.FilterGroup{})

	assert.NotEqual(t, filtered, unfiltered)
	assert.Contains(t, filtered, "room:gets:1:10")
}

func TestBuildCacheKeyWithQuery_Stable(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "DESC"}

	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "status", Value: "available", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "type", Value: "Deluxe", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "max_guests", Value: 2, Operator: dto.FilterOperatorGreaterEq},
			dto.Filter{Field: "price", Value: 300.0, Operator: dto.FilterOperatorLessEq},
		},
	}

	// Map iteration order varies; the derived key must not.
	first := shared.BuildCacheKeyWithQuery("room:gets", params, group)
	for range 20 {
		assert.Equal(t, first, shared.BuildCacheKeyWithQuery("room:gets", params, group))
	}

	// Args are appended in sorted name order.
	assert.True(t, strings.HasSuffix(first, ":2:300:available:Deluxe"), first)
}

func boolPtr(b bool) *bool {
	return &b
}
