package dialog

import "testing"

func TestScriptedQueues(t *testing.T) {
	s := &Scripted{
		Bools:   []bool{true},
		Choices: []int{2},
		Numbers: []int{42},
		Strings: []string{"Work:"},
	}
	if v, ans := s.Bool("continue?", "", false); !v || ans != Proceed {
		t.Fatalf("Bool: %v %v", v, ans)
	}
	if v, _ := s.Choice("pick", "", []string{"a", "b", "c"}, 0); v != 2 {
		t.Fatalf("Choice: %v", v)
	}
	if v, _ := s.Number("how many", "", 0, 100, 0); v != 42 {
		t.Fatalf("Number: %v", v)
	}
	if v, _ := s.String("where", "", "RAM:"); v != "Work:" {
		t.Fatalf("String: %v", v)
	}
	// queues now exhausted: falls back to supplied default
	if v, _ := s.Bool("continue?", "", true); !v {
		t.Fatalf("Bool fallback: %v", v)
	}
}

func TestScriptedAnswers(t *testing.T) {
	s := &Scripted{Answers: []Answer{Abort}}
	if _, ans := s.Bool("continue?", "", true); ans != Abort {
		t.Fatalf("expected Abort, got %v", ans)
	}
}

func TestScriptedRecordsMessages(t *testing.T) {
	s := &Scripted{}
	s.Welcome("Example", "1.0")
	s.Working("copying files")
	s.Complete(true, "done")
	if len(s.Messages) != 1 || len(s.Workings) != 1 || len(s.Completions) != 1 {
		t.Fatalf("unexpected recording: %+v", s)
	}
	if !s.Completions[0].OK {
		t.Fatal("expected OK completion")
	}
}
