package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"veranda/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq with table",
			filter: dto.Filter{
				Field:    "status",
				Value:    "available",
				Operator: dto.FilterOperatorEq,
				Table:    "rooms",
			},
			wantWhere: "rooms.status = :status",
			wantArgs:  map[string]any{"status": "available"},
		},
		{
			name: "eq_fold for case-insensitive email match",
			filter: dto.Filter{
				Field:    "email",
				Value:    "John@Example.com",
				Operator: dto.FilterOperatorEqFold,
				Table:    "bookings",
			},
			wantWhere: "LOWER(bookings.email) = LOWER(:email)",
			wantArgs:  map[string]any{"email": "John@Example.com"},
		},
		{
			name: "less_eq with custom arg name",
			filter: dto.Filter{
				ArgName:  "max_price",
				Field:    "price",
				Value:    250.0,
				Operator: dto.FilterOperatorLessEq,
				Table:    "rooms",
			},
			wantWhere: "rooms.price <= :max_price",
			wantArgs:  map[string]any{"max_price": 250.0},
		},
		{
			name: "greater_eq without table",
			filter: dto.Filter{
				Field:    "max_guests",
				Value:    2,
				Operator: dto.FilterOperatorGreaterEq,
			},
			wantWhere: "max_guests >= :max_guests",
			wantArgs:  map[string]any{"max_guests": 2},
		},
		{
			name: "less for overlap boundary",
			filter: dto.Filter{
				ArgName:  "check_out",
				Field:    "check_in",
				Value:    "2025-06-04",
				Operator: dto.FilterOperatorLess,
				Table:    "bookings",
			},
			wantWhere: "bookings.check_in < :check_out",
			wantArgs:  map[string]any{"check_out": "2025-06-04"},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "status",
				Value:    "available",
				Operator: "between",
			},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "room_id",
				Value:    "1",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			dto.Filter{
				Field:    "status",
				Value:    "cancelled",
				Operator: dto.FilterOperatorNotEq,
				Table:    "bookings",
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(bookings.room_id = :room_id AND bookings.status != :status)", where)
	assert.Equal(t, map[string]any{"room_id": "1", "status": "cancelled"}, args)
}

func TestFilterGroup_Empty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilterGroup_Nested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    "status",
				Value:    "available",
				Operator: dto.FilterOperatorEq,
			},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{
						Field:    "type",
						Value:    "Deluxe",
						Operator: dto.FilterOperatorEq,
					},
					dto.Filter{
						Field:    "type",
						ArgName:  "type_alt",
						Value:    "Suite",
						Operator: dto.FilterOperatorEq,
					},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Contains(t, where, "status = :status AND")
	assert.Contains(t, where, "(type = :type OR type = :type_alt)")
	assert.Len(t, args, 3)
}
