package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveDueDate(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	requested := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	existing := time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		wasCompleted bool
		completed    bool
		requested    *time.Time
		existing     *time.Time
		want         *time.Time
	}{
		{"completing without date uses now", false, true, nil, nil, &now},
		{"completing with date keeps it", false, true, &requested, nil, &requested},
		{"reopening clears date", true, false, nil, &existing, nil},
		{"reopening ignores requested date", true, false, &requested, &existing, nil},
		{"staying completed with date replaces it", true, true, &requested, &existing, &requested},
		{"staying completed without date keeps existing", true, true, nil, &existing, &existing},
		{"staying completed with nothing recorded uses now", true, true, nil, nil, &now},
		{"staying open clears date", false, false, nil, &existing, nil},
		{"staying open ignores requested date", false, false, &requested, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDueDate(tt.wasCompleted, tt.completed, tt.requested, tt.existing, now)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.True(t, tt.want.Equal(*got), "want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestResolveDueDate_ReturnsCopy(t *testing.T) {
	existing := time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)

	got := ResolveDueDate(true, true, nil, &existing, time.Now())
	assert.NotSame(t, &existing, got)
}

func TestResolveDueDate_NormalizesToUTC(t *testing.T) {
	zone := time.FixedZone("MSK", 3*60*60)
	requested := time.Date(2025, 4, 1, 15, 0, 0, 0, zone)

	got := ResolveDueDate(false, true, &requested, nil, time.Now())
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, requested.Equal(*got))
}
