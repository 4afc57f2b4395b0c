package level

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func writeStage(t *testing.T, dir, name string, d *Data) {
	t.Helper()
	if err := WriteFile(filepath.Join(dir, name), d); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func minimalData(name string) *Data {
	return &Data{
		Name: name,
		Particles: []Placement{
			{Position: mgl32.Vec2{100, 100}, Particle: Particle{Radius: 25}},
		},
	}
}

func libraryRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, sub := range []string{"default", "custom"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
	}
	return root
}

// TestLoadDefaultsNumericOrder verifies defaults sort by numeric stem,
// not lexically, so level 10 comes after level 2.
func TestLoadDefaultsNumericOrder(t *testing.T) {
	root := libraryRoot(t)
	dir := filepath.Join(root, "default")
	writeStage(t, dir, "10.toml", minimalData("ten"))
	writeStage(t, dir, "2.toml", minimalData("two"))
	writeStage(t, dir, "1.toml", minimalData("one"))

	lib, err := LoadLibrary(root)
	if err != nil {
		t.Fatalf("LoadLibrary failed: %v", err)
	}
	var got []int
	for i := range lib.Defaults {
		got = append(got, lib.Defaults[i].Number)
	}
	want := []int{1, 2, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}
}

// TestLoadDefaultsRejectsNamedStem verifies a non-numeric default file
// name is fatal; the progression chain needs unambiguous ordering.
func TestLoadDefaultsRejectsNamedStem(t *testing.T) {
	root := libraryRoot(t)
	dir := filepath.Join(root, "default")
	writeStage(t, dir, "1.toml", minimalData("one"))
	writeStage(t, dir, "intro.toml", minimalData("intro"))

	_, err := LoadLibrary(root)
	if err == nil {
		t.Fatal("Expected error for named default stem, got nil")
	}
	if !strings.Contains(err.Error(), "numbers") {
		t.Errorf("Expected numbering complaint, got %v", err)
	}
}

// TestLoadCustomsSkipsBroken verifies one malformed custom file is
// skipped without failing the whole library.
func TestLoadCustomsSkipsBroken(t *testing.T) {
	root := libraryRoot(t)
	writeStage(t, filepath.Join(root, "default"), "1.toml", minimalData("one"))
	writeStage(t, filepath.Join(root, "custom"), "good.toml", minimalData("good"))
	broken := filepath.Join(root, "custom", "broken.toml")
	if err := os.WriteFile(broken, []byte("name = [unclosed"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	lib, err := LoadLibrary(root)
	if err != nil {
		t.Fatalf("LoadLibrary failed: %v", err)
	}
	if len(lib.Customs) != 1 {
		t.Fatalf("Expected 1 custom stage, got %d", len(lib.Customs))
	}
	if lib.Customs[0].Data.Name != "good" {
		t.Errorf("Expected custom stage good, got %s", lib.Customs[0].Data.Name)
	}
}

// TestLibraryNext verifies the next-stage relation used when a
// numbered level completes.
func TestLibraryNext(t *testing.T) {
	root := libraryRoot(t)
	dir := filepath.Join(root, "default")
	writeStage(t, dir, "1.toml", minimalData("one"))
	writeStage(t, dir, "3.toml", minimalData("three"))

	lib, err := LoadLibrary(root)
	if err != nil {
		t.Fatalf("LoadLibrary failed: %v", err)
	}
	next, ok := lib.Next(1)
	if !ok || next.Number != 3 {
		t.Errorf("Expected next of 1 to be 3, got %v %v", next, ok)
	}
	if _, ok := lib.Next(3); ok {
		t.Error("Expected no stage after the last one")
	}
}

// TestStageKey verifies the progress keying for numbered and custom
// stages, including the ID fallback.
func TestStageKey(t *testing.T) {
	s := Stage{Number: 4}
	s.Data = minimalData("four")
	if s.Key() != "default:4" {
		t.Errorf("Expected default:4, got %s", s.Key())
	}
	c := Stage{Custom: true, Data: minimalData("mine")}
	if c.Key() != "custom:mine" {
		t.Errorf("Expected custom:mine, got %s", c.Key())
	}
	c.Data.ID = "ab12"
	if c.Key() != "custom:ab12" {
		t.Errorf("Expected custom:ab12, got %s", c.Key())
	}
}
