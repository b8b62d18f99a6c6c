package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderFilter_Validate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		filter    domain.OrderFilter
		wantError string
	}{
		{
			name:      "empty filter: error",
			wantError: "all fields are empty",
		},
		{
			name:   "ids only: ok",
			filter: domain.OrderFilter{IDs: []uuid.UUID{uuid.New()}},
		},
		{
			name:      "invalid status: error",
			filter:    domain.OrderFilter{Statuses: []domain.OrderStatus{"lost"}},
			wantError: `statuses: "lost" is not a valid order status`,
		},
		{
			name:      "empty time range: error",
			filter:    domain.OrderFilter{CreatedAt: &domain.TimeRange{}},
			wantError: "createdAt: both Before and After are nil",
		},
		{
			name: "inverted time range: error",
			filter: domain.OrderFilter{CreatedAt: &domain.TimeRange{
				Before: lo.ToPtr(now.Add(-time.Hour)),
				After:  lo.ToPtr(now),
			}},
			wantError: "createdAt: before is before After",
		},
		{
			name: "bounded range: ok",
			filter: domain.OrderFilter{CreatedAt: &domain.TimeRange{
				Before: lo.ToPtr(now),
				After:  lo.ToPtr(now.Add(-time.Hour)),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTimeRange_Contains(t *testing.T) {
	now := time.Now()
	r := domain.TimeRange{
		After:  lo.ToPtr(now.Add(-time.Minute)),
		Before: lo.ToPtr(now.Add(time.Minute)),
	}

	assert.True(t, r.Contains(now))
	assert.False(t, r.Contains(now.Add(-time.Minute)))
	assert.False(t, r.Contains(now.Add(time.Minute)))
	assert.True(t, domain.TimeRange{After: lo.ToPtr(now)}.Contains(now.Add(time.Second)))
}
