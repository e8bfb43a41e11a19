package logging

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecorderCollectsMessages(t *testing.T) {
	rec := &Recorder{}
	rec.Warning("parsing: ", "no parser")
	rec.Verbose("dispatch", " ok")

	if diff := cmp.Diff([]string{"parsing: no parser"}, rec.Warnings); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dispatch ok"}, rec.Verboses); diff != "" {
		t.Fatalf("verbose mismatch (-want +got):\n%s", diff)
	}
}

func TestOrDefault(t *testing.T) {
	if OrDefault(nil) == nil {
		t.Fatalf("expected default logger for nil input")
	}
	rec := &Recorder{}
	if got := OrDefault(rec); got != rec {
		t.Fatalf("expected supplied logger to be returned")
	}
}
