package importstate

import (
	"os"
	"path/filepath"
	"testing"
)

// TestMarkAndCheck verifies the imported flag round-trips and that a
// changed hash or size makes the file eligible again.
func TestMarkAndCheck(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	ok, err := db.IsImported("export.csv", 100, "aaa")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("unseen file reported as imported")
	}

	if err := db.MarkImported("export.csv", 100, "aaa"); err != nil {
		t.Fatal(err)
	}
	ok, _ = db.IsImported("export.csv", 100, "aaa")
	if !ok {
		t.Error("file not reported as imported after mark")
	}

	// Same path, new content: must import again.
	ok, _ = db.IsImported("export.csv", 120, "bbb")
	if ok {
		t.Error("changed file reported as imported")
	}
}

// TestMarkReplaces verifies re-marking a path updates its record.
func TestMarkReplaces(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := db.MarkImported("export.csv", 100, "aaa"); err != nil {
		t.Fatal(err)
	}
	if err := db.MarkImported("export.csv", 120, "bbb"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := db.IsImported("export.csv", 100, "aaa"); ok {
		t.Error("old record still present after replace")
	}
	if ok, _ := db.IsImported("export.csv", 120, "bbb"); !ok {
		t.Error("new record missing")
	}
}

// TestHashFile verifies hashing is content-based and stable.
func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.csv")
	if err := os.WriteFile(path, []byte("title,start_time\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	h2, _ := HashFile(path)
	if h1 != h2 {
		t.Errorf("hash not stable: %s vs %s", h1, h2)
	}

	other := filepath.Join(dir, "b.csv")
	os.WriteFile(other, []byte("different"), 0o644)
	h3, _ := HashFile(other)
	if h1 == h3 {
		t.Error("different content produced same hash")
	}
}
