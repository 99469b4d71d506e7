package cache

import (
	"path/filepath"
	"testing"

	"github.com/coderunner/coderun/internal/langtag"
)

func TestPutThenExistsThenOpenRoundTrips(t *testing.T) {
	dir := t.TempDir()
	c := New(filepath.Join(dir, "code_cache"))

	digest := "deadbeef"
	wrapped := []byte("console.log('hi')")

	if c.Exists(digest, langtag.Js) {
		t.Fatalf("expected cache miss before Put")
	}

	if _, _, err := c.Put(digest, wrapped, langtag.Js); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if !c.Exists(digest, langtag.Js) {
		t.Fatalf("expected cache hit after Put")
	}

	got, _, err := c.Open(digest, langtag.Js)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if string(got) != string(wrapped) {
		t.Fatalf("expected byte-identical content, got %q", got)
	}
}

func TestOpenMissReturnsError(t *testing.T) {
	c := New(t.TempDir())
	if _, _, err := c.Open("nope", langtag.Python); err == nil {
		t.Fatalf("expected error opening a missing cache entry")
	}
}

func TestClearLanguageOnlyRemovesMatchingExtension(t *testing.T) {
	c := New(t.TempDir())
	if _, _, err := c.Put("a", []byte("x"), langtag.Js); err != nil {
		t.Fatal(err)
	}
	if _, _, err := c.Put("b", []byte("y"), langtag.Python); err != nil {
		t.Fatal(err)
	}

	if err := c.ClearLanguage(langtag.Js); err != nil {
		t.Fatalf("ClearLanguage failed: %v", err)
	}

	if c.Exists("a", langtag.Js) {
		t.Fatalf("expected js entry to be cleared")
	}
	if !c.Exists("b", langtag.Python) {
		t.Fatalf("expected python entry to survive")
	}
}

func TestClearAllRemovesEverything(t *testing.T) {
	c := New(t.TempDir())
	if _, _, err := c.Put("a", []byte("x"), langtag.Js); err != nil {
		t.Fatal(err)
	}

	if err := c.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	if c.Exists("a", langtag.Js) {
		t.Fatalf("expected no entries after ClearAll")
	}
}

func TestClearLanguageOnEmptyCacheIsNotAnError(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "never-created"))
	if err := c.ClearLanguage(langtag.Ts); err != nil {
		t.Fatalf("expected no error clearing a never-created cache dir, got %v", err)
	}
}
