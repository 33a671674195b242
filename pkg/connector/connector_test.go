package connector

import "testing"

func TestArrayConnectorTransitionCost(t *testing.T) {
	// 2 rids x 3 lids
	costs := []int32{
		0, 100, 200,
		300, -1, 500,
	}
	c := NewArrayConnector(costs, 2, 3)

	tests := []struct {
		rid, lid uint16
		want     int32
	}{
		{0, 0, 0},
		{0, 2, 200},
		{1, 0, 300},
		{1, 1, InvalidCost}, // negative stored cost treated as invalid
		{5, 0, InvalidCost}, // out of range rid
	}
	for _, tc := range tests {
		if got := c.TransitionCost(tc.rid, tc.lid); got != tc.want {
			t.Errorf("TransitionCost(%d,%d) = %d, want %d", tc.rid, tc.lid, got, tc.want)
		}
	}
}

func TestNewArrayConnectorPanicsOnSizeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on mismatched cost matrix size")
		}
	}()
	NewArrayConnector([]int32{1, 2, 3}, 2, 2)
}

func TestSaturatingAdd(t *testing.T) {
	tests := []struct {
		a, b, want int32
	}{
		{10, 20, 30},
		{InvalidCost, 5, InvalidCost},
		{5, InvalidCost, InvalidCost},
		{InvalidCost - 1, InvalidCost - 1, InvalidCost},
		{InvalidCost / 2, InvalidCost/2 - 1, InvalidCost - 1},
	}
	for _, tc := range tests {
		if got := SaturatingAdd(tc.a, tc.b); got != tc.want {
			t.Errorf("SaturatingAdd(%d,%d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
