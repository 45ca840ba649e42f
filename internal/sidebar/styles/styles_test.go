package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeColumnWidths(t *testing.T) {
	tests := []struct {
		name  string
		total int
		want  ColumnWidths
	}{
		{name: "zero", total: 0, want: ColumnWidths{}},
		{name: "narrow drops messages", total: 40, want: ColumnWidths{Sidebar: 40}},
		{name: "medium", total: 90, want: ColumnWidths{Sidebar: 30, Messages: 59}},
		{name: "wide caps sidebar", total: 200, want: ColumnWidths{Sidebar: 40, Messages: 159}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ComputeColumnWidths(tt.total))
		})
	}
}

func TestLookupFallsBackToDefault(t *testing.T) {
	require.Equal(t, "high-contrast", Lookup("high-contrast").Name)
	require.Equal(t, "default", Lookup("neon").Name)
	require.Equal(t, []string{"default", "high-contrast"}, Names())
}
