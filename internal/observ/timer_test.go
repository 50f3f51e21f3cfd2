package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	tm.End(idx, "3 files")
	tm.End(42, "ignored")
	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "3 files" {
		t.Fatalf("report = %+v", r)
	}
	if !strings.Contains(tm.Summary(), "// 3 files") {
		t.Errorf("summary = %q", tm.Summary())
	}
}

func TestTimerAddIsConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("lex", time.Millisecond)
			tm.Add("parse", 2*time.Millisecond)
		}()
	}
	wg.Wait()
	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	for _, p := range r.Phases {
		if p.Count != 8 {
			t.Errorf("%s count = %d", p.Name, p.Count)
		}
	}
	if r.TotalMS < 24 {
		t.Errorf("total = %.2f ms", r.TotalMS)
	}
	if !strings.Contains(tm.Summary(), "x8") {
		t.Errorf("summary = %q", tm.Summary())
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Errorf("report = %+v", r)
	}
}
