package checker

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   CheckResult
		want ResultKind
	}{
		{"registered", CheckResult{Number: "1", Registered: true}, KindSuccess},
		{"not registered", CheckResult{Number: "1"}, KindInfo},
		{"error wins over registered", CheckResult{Number: "1", Registered: true, Error: "boom"}, KindError},
		{"error only", CheckResult{Number: "1", Error: "boom"}, KindError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.in); got != tc.want {
				t.Fatalf("Classify=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestPercent_ZeroTotal(t *testing.T) {
	if got := Percent(0, 0); got != 0 {
		t.Fatalf("Percent(0,0)=%v, want 0", got)
	}
	if got := Percent(3, 0); got != 0 {
		t.Fatalf("Percent(3,0)=%v, want 0", got)
	}
	if got := Percent(1, 4); got != 25 {
		t.Fatalf("Percent(1,4)=%v, want 25", got)
	}
	if got := ProgressLabel(1, 4); got != "1 / 4" {
		t.Fatalf("ProgressLabel=%q", got)
	}
}

func TestBatchRow_MessageFallback(t *testing.T) {
	r := BatchRow(CheckResult{Number: "5"})
	if r.Message != "Unknown status" || r.Kind != KindInfo {
		t.Fatalf("unexpected row: %+v", r)
	}
	r = BatchRow(CheckResult{Number: "5", Message: "ok", Error: "bad"})
	if r.Message != "bad" || r.Kind != KindError {
		t.Fatalf("error should take precedence: %+v", r)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]CheckResult{
		{Number: "1", Registered: true},
		{Number: "2", Registered: true, Error: "x"},
		{Number: "3"},
		{Number: "4", Error: "y"},
	})
	if s.Registered != 1 || s.Errors != 2 || s.NotRegistered != 1 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	want := "Completed: 1 registered, 1 not registered, 2 errors"
	if s.String() != want {
		t.Fatalf("String()=%q, want %q", s.String(), want)
	}
}

func TestSplitNumbers(t *testing.T) {
	got := SplitNumbers("  \n15551234567\n\n   \n 15557654321 \r\n")
	if len(got) != 2 || got[0] != "15551234567" || got[1] != "15557654321" {
		t.Fatalf("SplitNumbers=%q", got)
	}
	if got := SplitNumbers("\n  \n\t\n"); len(got) != 0 {
		t.Fatalf("expected no numbers, got %q", got)
	}
}
