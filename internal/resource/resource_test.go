package resource

import "testing"

func TestConstructors(t *testing.T) {
	idle := Idle[int]()
	if idle.State != StateIdle || idle.HasValue || idle.Err != "" {
		t.Fatalf("Idle = %+v, want bare idle state", idle)
	}

	loading := Loading[int]()
	if loading.State != StateLoading || loading.HasValue {
		t.Fatalf("Loading = %+v, want loading without value", loading)
	}

	carried := LoadingWith(42)
	if carried.State != StateLoading || !carried.HasValue || carried.Value != 42 {
		t.Fatalf("LoadingWith = %+v, want loading carrying 42", carried)
	}

	success := Success("done")
	if success.State != StateSuccess || !success.HasValue || success.Value != "done" {
		t.Fatalf("Success = %+v, want success with value", success)
	}

	fail := Error[string]("boom")
	if fail.State != StateError || fail.HasValue || fail.Err != "boom" {
		t.Fatalf("Error = %+v, want error without value", fail)
	}

	failf := Errorf[int]("bad %s", "input")
	if failf.Err != "bad input" {
		t.Fatalf("Errorf message = %q, want %q", failf.Err, "bad input")
	}
}

func TestIsTerminal(t *testing.T) {
	if Idle[int]().IsTerminal() {
		t.Fatalf("idle must not be terminal")
	}
	if Loading[int]().IsTerminal() {
		t.Fatalf("loading must not be terminal")
	}
	if !Success(1).IsTerminal() {
		t.Fatalf("success must be terminal")
	}
	if !Error[int]("x").IsTerminal() {
		t.Fatalf("error must be terminal")
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		StateIdle:    "idle",
		StateLoading: "loading",
		StateSuccess: "success",
		StateError:   "error",
		State(9):     "state(9)",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Fatalf("State(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}
