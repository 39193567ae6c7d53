package time

import (
	"testing"
	"time"
)

func TestFake(t *testing.T) {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	f := NewFake(start)
	f.Sleep(60 * time.Millisecond)
	f.Sleep(0)
	f.Advance(time.Second)

	if got := f.Now().Sub(start); got != time.Second+60*time.Millisecond {
		t.Fatalf("elapsed = %v", got)
	}
	d, n := f.Slept()
	if d != 60*time.Millisecond || n != 2 {
		t.Fatalf("slept = %v over %d calls", d, n)
	}
}

func TestSystem(t *testing.T) {
	before := time.Now()
	System.Sleep(time.Millisecond)
	if !System.Now().After(before) {
		t.Fatal("system clock did not move")
	}
}
