package level

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Stage is one playable entry in the library. Numbered stages come
// from the default set and chain into each other; custom stages are
// standalone.
type Stage struct {
	Number int
	Custom bool
	Path   string
	Data   *Data
}

// Key identifies the stage in progress records.
func (s *Stage) Key() string {
	if !s.Custom {
		return fmt.Sprintf("default:%d", s.Number)
	}
	if s.Data.ID != "" {
		return "custom:" + s.Data.ID
	}
	return "custom:" + s.Data.Name
}

// Title is the display name shown in menus.
func (s *Stage) Title() string {
	if !s.Custom {
		return fmt.Sprintf("Level %d", s.Number)
	}
	return s.Data.Name
}

// Library holds every stage found under the levels root.
type Library struct {
	Defaults []Stage
	Customs  []Stage
}

// LoadLibrary scans root/default and root/custom. A malformed default
// set is fatal since the progression chain depends on it; custom files
// are skipped with a log line so one broken download cannot take the
// menu down.
func LoadLibrary(root string) (*Library, error) {
	lib := &Library{}
	defaults, err := loadDefaults(filepath.Join(root, "default"))
	if err != nil {
		return nil, err
	}
	lib.Defaults = defaults
	lib.Customs = loadCustoms(filepath.Join(root, "custom"))
	return lib, nil
}

// loadDefaults requires every file stem to be a number; the numbers
// define the play order and the "next level" relation.
func loadDefaults(dir string) ([]Stage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("default levels: %w", err)
	}
	var stages []Stage
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".toml") {
			continue
		}
		stem := strings.TrimSuffix(name, ".toml")
		n, err := strconv.Atoi(stem)
		if err != nil {
			return nil, fmt.Errorf("default level names should be numbers: %q", name)
		}
		path := filepath.Join(dir, name)
		d, err := DecodeFile(path)
		if err != nil {
			return nil, err
		}
		if err := Validate(d); err != nil {
			return nil, err
		}
		stages = append(stages, Stage{Number: n, Path: path, Data: d})
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("default levels: none found in %s", dir)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i].Number < stages[j].Number })
	return stages, nil
}

func loadCustoms(dir string) []Stage {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// A missing custom directory just means nobody made one yet.
		return nil
	}
	var stages []Stage
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".toml") {
			continue
		}
		path := filepath.Join(dir, name)
		d, err := DecodeFile(path)
		if err != nil {
			log.Printf("skipping custom level %s: %v", name, err)
			continue
		}
		if err := Validate(d); err != nil {
			log.Printf("skipping custom level %s: %v", name, err)
			continue
		}
		stages = append(stages, Stage{Custom: true, Path: path, Data: d})
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i].Data.Name < stages[j].Data.Name })
	return stages
}

// Stages lists every stage in menu order: defaults by number, then
// customs by name. Menus index into this list, so the ordering here
// is what selection indices mean.
func (l *Library) Stages() []*Stage {
	out := make([]*Stage, 0, len(l.Defaults)+len(l.Customs))
	for i := range l.Defaults {
		out = append(out, &l.Defaults[i])
	}
	for i := range l.Customs {
		out = append(out, &l.Customs[i])
	}
	return out
}

// RefreshCustoms rescans the custom directory so a level saved from
// the editor shows up in the select menu without a restart.
func (l *Library) RefreshCustoms(root string) {
	l.Customs = loadCustoms(filepath.Join(root, "custom"))
}

// Next returns the numbered stage that follows n, if any.
func (l *Library) Next(n int) (*Stage, bool) {
	for i := range l.Defaults {
		if l.Defaults[i].Number > n {
			return &l.Defaults[i], true
		}
	}
	return nil, false
}

// ByNumber finds a numbered stage.
func (l *Library) ByNumber(n int) (*Stage, bool) {
	for i := range l.Defaults {
		if l.Defaults[i].Number == n {
			return &l.Defaults[i], true
		}
	}
	return nil, false
}

// CustomByName finds a custom stage by its display name.
func (l *Library) CustomByName(name string) (*Stage, bool) {
	for i := range l.Customs {
		if l.Customs[i].Data.Name == name {
			return &l.Customs[i], true
		}
	}
	return nil, false
}
