package vaddr

import "testing"

func TestLevelIndex(t *testing.T) {
	va := FromUint64(0x00007FC000001234)
	tests := []struct {
		level uint
		want  uint64
	}{
		{0, 255},
		{1, 256},
		{2, 0},
		{3, 1},
	}
	for _, tt := range tests {
		if got := va.LevelIndex(tt.level); got != tt.want {
			t.Errorf("LevelIndex(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestPageOffset(t *testing.T) {
	va := FromUint64(0x00007FC000001234)
	if got := va.PageOffset(); got != 0x234 {
		t.Errorf("PageOffset() = 0x%x, want 0x234", got)
	}
}

func TestLevelIndexBounds(t *testing.T) {
	va := FromUint64(0xFFFFFFFFFFFFFFFF)
	for level := uint(0); level < NumLevels; level++ {
		idx := va.LevelIndex(level)
		if idx > 511 {
			t.Errorf("LevelIndex(%d) = %d, out of [0,511]", level, idx)
		}
	}
}

func TestZeroAddress(t *testing.T) {
	va := FromUint64(0)
	for level := uint(0); level < NumLevels; level++ {
		if idx := va.LevelIndex(level); idx != 0 {
			t.Errorf("LevelIndex(%d) = %d, want 0", level, idx)
		}
	}
	if off := va.PageOffset(); off != 0 {
		t.Errorf("PageOffset() = %d, want 0", off)
	}
}
