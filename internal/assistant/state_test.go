package assistant

import (
	"fmt"
	"testing"
)

func TestAddExample_EvictsOldestAtCap(t *testing.T) {
	st := NewState()
	for i := 0; i < MaxExamples+25; i++ {
		st.AddExample(TrainingExample{Question: fmt.Sprintf("q%d", i), Answer: "a"})
	}

	if len(st.Examples) != MaxExamples {
		t.Fatalf("len = %d, want %d", len(st.Examples), MaxExamples)
	}
	if st.Examples[0].Question != "q25" {
		t.Fatalf("oldest surviving example = %q, want q25", st.Examples[0].Question)
	}
	if last := st.Examples[len(st.Examples)-1]; last.Question != fmt.Sprintf("q%d", MaxExamples+24) {
		t.Fatalf("newest example = %q", last.Question)
	}
}

func TestAddCustomResponse_KeepsPriorityOrder(t *testing.T) {
	st := NewState()
	st.AddCustomResponse(CustomResponse{Trigger: "a", Priority: 3})
	st.AddCustomResponse(CustomResponse{Trigger: "b", Priority: 8})
	st.AddCustomResponse(CustomResponse{Trigger: "c", Priority: 5})
	st.AddCustomResponse(CustomResponse{Trigger: "d", Priority: 8})
	st.AddCustomResponse(CustomResponse{Trigger: "e", Priority: 1})

	var got []string
	for _, cr := range st.CustomResponses {
		got = append(got, fmt.Sprintf("%s%d", cr.Trigger, cr.Priority))
	}
	want := []string{"b8", "d8", "c5", "a3", "e1"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
