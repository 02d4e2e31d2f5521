package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultListRequest(t *testing.T) {
	list := DefaultListRequest()

	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)
	assert.Equal(t, "desc", list.OrderDir)
	assert.Empty(t, list.OrderBy)
}

func TestListRequestOrderColumn(t *testing.T) {
	tests := []struct {
		name    string
		orderBy string
		allowed []string
		want    string
	}{
		{"allowed column passes", "due_date", []string{"created_at", "due_date"}, "due_date"},
		{"unknown column is dropped", "secret_col", []string{"created_at", "due_date"}, ""},
		{"empty request is dropped", "", []string{"created_at"}, ""},
		{"sql fragment is dropped", "created_at; DROP TABLE invoices", []string{"created_at"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := ListRequest{OrderBy: tt.orderBy}
			assert.Equal(t, tt.want, list.OrderColumn(tt.allowed...))
		})
	}
}
