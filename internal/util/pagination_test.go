package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page, size int
		wantFrom   int
		wantLimit  int
	}{
		{name: "defaults", page: 0, size: 0, wantFrom: 0, wantLimit: DefaultPageSize},
		{name: "first page", page: 1, size: 10, wantFrom: 0, wantLimit: 10},
		{name: "third page", page: 3, size: 5, wantFrom: 10, wantLimit: 5},
		{name: "negative page", page: -2, size: 10, wantFrom: 0, wantLimit: 10},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			from, limit := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
