package morph

import (
	"runtime"
	"testing"
)

func TestApplyOptions_Defaults(t *testing.T) {
	o := applyOptions(nil)
	if o.workers != runtime.GOMAXPROCS(0) {
		t.Errorf("workers = %d, want GOMAXPROCS", o.workers)
	}
	if o.pool == nil {
		t.Fatal("pool is nil")
	}
	if o.pool != applyOptions(nil).pool {
		t.Error("default pool is not shared")
	}
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{1, 1},
		{5, 5},
		{0, runtime.GOMAXPROCS(0)},
		{-2, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		if got := applyOptions([]Option{WithWorkers(tt.n)}).workers; got != tt.want {
			t.Errorf("WithWorkers(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestWithPool(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	if p.Workers() != 2 {
		t.Errorf("Workers() = %d, want 2", p.Workers())
	}
	if o := applyOptions([]Option{WithPool(p)}); o.pool != p.wp {
		t.Error("WithPool did not select the pool")
	}
	if o := applyOptions([]Option{WithPool(nil)}); o.pool != sharedPool() {
		t.Error("WithPool(nil) did not keep the shared pool")
	}

	p.Close()
	p.Close()
}
