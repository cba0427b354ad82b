package counters

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oxygen/api-performance-counters-ui/src/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoadJSON(t *testing.T) {
	p := writeFile(t, "pc.json", `{"metrics":{"users_search":{"successCount":12,"successMillisecondsAverage":40}}}`)
	pc, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := pc.Metrics["users_search"].SuccessCount; got != 12 {
		t.Fatalf("successCount=%v want 12", got)
	}
}

func TestLoadJSONLUsesLastSnapshot(t *testing.T) {
	content := strings.Join([]string{
		`{"metrics":{"a":{"successCount":1}}}`,
		``,
		`{"metrics":{"a":{"successCount":7},"b":{"errorCount":2}}}`,
		``,
	}, "\n")
	p := writeFile(t, "history.jsonl", content)
	pc, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if pc.Len() != 2 || pc.Metrics["a"].SuccessCount != 7 {
		t.Fatalf("expected latest snapshot, got %+v", pc.Metrics)
	}
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct{ name, content string }{
		{"empty.jsonl", "\n\n"},
		{"nometrics.json", `{"foo":1}`},
		{"badlast.jsonl", "{\"metrics\":{}}\n{\"x\":1}\n"},
	}
	for _, c := range cases {
		p := writeFile(t, c.name, c.content)
		if _, err := Load(p); !errors.Is(err, types.ErrInvalidPayload) {
			t.Fatalf("%s: expected ErrInvalidPayload got %v", c.name, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error got %v", err)
	}
}

func TestReadHistoryKeepsLastN(t *testing.T) {
	in := strings.Join([]string{
		`{"metrics": {"a": {"successCount": 1}}}`,
		`not json`,
		``,
		`{"metrics": {"a": {"successCount": 2}}}`,
		`{"metrics": {"a": {"successCount": 3}, "b": {"errorCount": 1}}}`,
	}, "\n")
	snaps, skipped, err := ReadHistory(strings.NewReader(in), 2)
	if err != nil {
		t.Fatalf("ReadHistory: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("skipped=%d want 1", skipped)
	}
	if len(snaps) != 2 {
		t.Fatalf("len=%d want 2", len(snaps))
	}
	if snaps[0].Metrics["a"].SuccessCount != 2 || snaps[1].Len() != 2 {
		t.Fatalf("unexpected snapshots: %+v %+v", snaps[0], snaps[1])
	}
	all, _, err := ReadHistory(strings.NewReader(in), 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("unbounded history: len=%d err=%v", len(all), err)
	}
}
