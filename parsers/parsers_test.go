package parsers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cdclsat/yicesat/internal/sat"
)

// recordingSolver captures what the loader feeds it.
type recordingSolver struct {
	vars    int
	clauses [][]sat.Literal
}

func (r *recordingSolver) NewVar() sat.Var {
	r.vars++
	return sat.Var(r.vars)
}

func (r *recordingSolver) AssertClause(lits []sat.Literal) error {
	r.clauses = append(r.clauses, append([]sat.Literal(nil), lits...))
	return nil
}

func TestLoadDIMACS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.cnf")
	content := "c a comment\np cnf 3 2\n1 -2 0\n2 3 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &recordingSolver{}
	if err := LoadDIMACS(path, false, r); err != nil {
		t.Fatalf("LoadDIMACS: %s", err)
	}

	if r.vars != 3 {
		t.Errorf("declared variables = %d, want 3", r.vars)
	}
	want := [][]sat.Literal{
		{sat.PositiveLiteral(1), sat.NegativeLiteral(2)},
		{sat.PositiveLiteral(2), sat.PositiveLiteral(3)},
	}
	if diff := cmp.Diff(want, r.clauses); diff != "" {
		t.Errorf("clauses mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACS_RejectsNonCNF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.wcnf")
	if err := os.WriteFile(path, []byte("p wcnf 2 1\n1 2 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadDIMACS(path, false, &recordingSolver{}); err == nil {
		t.Error("LoadDIMACS accepted a non-CNF problem line")
	}
}
