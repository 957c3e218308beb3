package contrib

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		count int
		want  Level
	}{
		{0, LevelNone},
		{1, LevelLow},
		{3, LevelLow},
		{4, LevelMedium},
		{6, LevelMedium},
		{7, LevelHigh},
		{9, LevelHigh},
		{10, LevelMax},
		{20, LevelMax},
		{1 << 20, LevelMax},
	}

	for _, tt := range tests {
		if got := Classify(tt.count); got != tt.want {
			t.Errorf("Classify(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestClassifyNonDecreasing(t *testing.T) {
	prev := Classify(0)
	for count := 1; count <= 500; count++ {
		level := Classify(count)
		if level < prev {
			t.Fatalf("Classify(%d) = %d, below Classify(%d) = %d", count, level, count-1, prev)
		}
		if level < LevelNone || level > LevelMax {
			t.Fatalf("Classify(%d) = %d, out of range", count, level)
		}
		prev = level
	}
}

func TestClassifyNegativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Classify(-1) did not panic")
		}
	}()
	Classify(-1)
}
