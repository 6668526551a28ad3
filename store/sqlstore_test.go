package store

import (
	"path/filepath"
	"testing"

	"github.com/CTAG07/wisp"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLStore(dbFile, nil)
	if err != nil {
		t.Fatalf("OpenSQLStore() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestSQLStoreAddAndGet(t *testing.T) {
	s := newTestStore(t)
	if err := s.Add("greeting", "Hi, {{ name }}!"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	tmpl, ok := s.Get("greeting")
	if !ok {
		t.Fatalf("expected greeting to be present")
	}
	ctx := wisp.NewContext().Insert("name", wisp.String("gopher"))
	out, err := wisp.NewRenderer().Render("greeting", tmpl, ctx, s)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "Hi, gopher!" {
		t.Errorf("got %q", out)
	}
}

func TestSQLStoreAddDuplicateRejected(t *testing.T) {
	s := newTestStore(t)
	if err := s.Add("t", "a"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	err := s.Add("t", "b")
	if err == nil {
		t.Fatalf("expected an error")
	}
	re, ok := err.(*wisp.RenderError)
	if !ok {
		t.Fatalf("expected *wisp.RenderError, got %T", err)
	}
	if re.Kind != wisp.KindDuplicateTemplate {
		t.Errorf("got kind %v", re.Kind)
	}
}

func TestSQLStoreAddInvalidTemplateRejected(t *testing.T) {
	s := newTestStore(t)
	err := s.Add("bad", "{{ }}")
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if _, ok := err.(*wisp.ParseError); !ok {
		t.Fatalf("expected *wisp.ParseError, got %T", err)
	}
	if _, ok := s.Get("bad"); ok {
		t.Errorf("a template that failed to parse should not have been stored")
	}
}

func TestSQLStoreReplaceOverwrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.Replace("t", "a"); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if err := s.Replace("t", "b"); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	source, ok := s.Source("t")
	if !ok || source != "b" {
		t.Errorf("got %q, %v", source, ok)
	}
}

func TestSQLStoreReplaceStampsNewRevision(t *testing.T) {
	s := newTestStore(t)
	if err := s.Add("t", "a"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	rev1, _ := s.Revision("t")
	if err := s.Replace("t", "b"); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	rev2, _ := s.Revision("t")
	if rev1 == "" || rev2 == "" || rev1 == rev2 {
		t.Errorf("expected distinct revisions, got %q and %q", rev1, rev2)
	}
}

func TestSQLStoreRemove(t *testing.T) {
	s := newTestStore(t)
	if err := s.Add("t", "a"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Remove("t"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, ok := s.Get("t"); ok {
		t.Errorf("expected t to be gone")
	}
}

func TestSQLStoreList(t *testing.T) {
	s := newTestStore(t)
	if err := s.Add("b", "1"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Add("a", "2"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	names := s.List()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("got %v", names)
	}
}

func TestSQLStoreGetUnknown(t *testing.T) {
	s := newTestStore(t)
	if _, ok := s.Get("missing"); ok {
		t.Errorf("expected missing template to be absent")
	}
}
