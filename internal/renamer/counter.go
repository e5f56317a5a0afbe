package renamer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/dataset"
	"github.com/oukeidos/lorakit/internal/files"
	"github.com/oukeidos/lorakit/internal/logger"
)

// PlanItem is one file of a counter rename.
type PlanItem struct {
	OldName string `yaml:"old"`
	NewName string `yaml:"new"`
	Ordinal string `yaml:"ordinal"`
}

// Unchanged reports whether the file already has its target name.
func (p PlanItem) Unchanged() bool { return p.OldName == p.NewName }

func (p PlanItem) validate() error {
	for _, name := range []string{p.OldName, p.NewName} {
		if !plainName(name) {
			return apperrors.Validation(fmt.Sprintf("Invalid file name %q in rename plan.", name))
		}
	}
	return nil
}

// plainName reports whether name stays inside its folder when joined to it.
func plainName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}

// Plan is a counter rename of the files in Dir.
type Plan struct {
	Dir   string     `yaml:"dir"`
	Items []PlanItem `yaml:"files"`
}

// Pending counts the items that would actually be renamed.
func (p Plan) Pending() int {
	n := 0
	for _, it := range p.Items {
		if !it.Unchanged() {
			n++
		}
	}
	return n
}

// splitName splits at the last dot, like a file extension; "a.tar.gz" keeps
// "a.tar" as its stem.
func splitName(name string) (string, string) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		// dotfiles such as ".env" have no extension
		return name, ""
	}
	return stem, ext
}

// PlanCounter assigns every distinct stem of the files in dir a zero-padded
// ordinal, in first-seen order over the byte-sorted file names. Files that
// share a stem share an ordinal, so an image and its caption stay paired.
func PlanCounter(dir string) (Plan, error) {
	names, err := dataset.ListFiles(dir)
	if err != nil {
		return Plan{}, err
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	ordinals := make(map[string]int)
	var order []string
	for _, name := range names {
		stem, _ := splitName(name)
		if _, ok := ordinals[stem]; !ok {
			ordinals[stem] = len(order)
			order = append(order, stem)
		}
	}
	width := ordinalWidth(len(order))

	plan := Plan{Dir: dir, Items: make([]PlanItem, 0, len(names))}
	for _, name := range names {
		stem, ext := splitName(name)
		ord := fmt.Sprintf("%0*d", width, ordinals[stem])
		plan.Items = append(plan.Items, PlanItem{OldName: name, NewName: ord + ext, Ordinal: ord})
	}
	return plan, nil
}

// ordinalWidth is 3 digits, growing when there are more than 1000 groups.
func ordinalWidth(groups int) int {
	width := 3
	for limit := 1000; groups > limit; limit *= 10 {
		width++
	}
	return width
}

// ApplyCounter executes plan. Files move to unique temporary names first and
// then to their targets, so a target name that is still held by another
// file of the plan is never overwritten. A target taken by any other file
// fails that item and puts the file back under its old name.
func ApplyCounter(plan Plan) dataset.Report {
	var report dataset.Report
	batch := uuid.NewString()[:8]

	type staged struct {
		tmp  string
		item PlanItem
	}
	var moved []staged
	for i, it := range plan.Items {
		report.Processed++
		if err := it.validate(); err != nil {
			report.Fail(it.OldName, err)
			continue
		}
		if it.Unchanged() {
			continue
		}
		tmp := fmt.Sprintf(".lorakit-%s-%d%s", batch, i, filepath.Ext(it.OldName))
		if err := files.Rename(filepath.Join(plan.Dir, it.OldName), filepath.Join(plan.Dir, tmp)); err != nil {
			report.Fail(it.OldName, err)
			continue
		}
		moved = append(moved, staged{tmp: tmp, item: it})
	}

	for _, m := range moved {
		tmp := filepath.Join(plan.Dir, m.tmp)
		dst := filepath.Join(plan.Dir, m.item.NewName)
		err := claim(dst)
		if err == nil {
			err = files.Rename(tmp, dst)
		}
		if err != nil {
			restore(tmp, filepath.Join(plan.Dir, m.item.OldName))
			report.Fail(m.item.OldName, err)
			continue
		}
		report.Changed++
	}
	logger.Info("Counter rename finished", "dir", plan.Dir, "renamed", report.Changed, "failed", len(report.Failed))
	return report
}

// claim fails when path is already taken. Every name the batch vacated is
// free by the time the second phase runs, so anything found there belongs
// to someone else.
func claim(path string) error {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return apperrors.Newf(apperrors.KindFilesystem, os.ErrExist, "Target %s already exists", filepath.Base(path))
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

// restore moves a staged file back to its old name when that name is still
// free; otherwise the file stays under its temporary name.
func restore(tmp, oldPath string) {
	err := claim(oldPath)
	if err == nil {
		err = files.Rename(tmp, oldPath)
	}
	if err != nil {
		logger.Error("Could not restore file", "tmp", filepath.Base(tmp), "name", filepath.Base(oldPath), "error", err)
	}
}

// RenameCounter plans and applies a counter rename of dir.
func RenameCounter(dir string) (Plan, dataset.Report, error) {
	plan, err := PlanCounter(dir)
	if err != nil {
		return plan, dataset.Report{}, err
	}
	return plan, ApplyCounter(plan), nil
}

// WriteManifest writes plan as YAML, for review or to undo a rename by hand.
func WriteManifest(w io.Writer, plan Plan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return err
	}
	return enc.Close()
}

// ReadManifest decodes a manifest written by WriteManifest. Every name must
// be a plain file name inside the manifest's folder.
func ReadManifest(r io.Reader) (Plan, error) {
	var plan Plan
	if err := yaml.NewDecoder(r).Decode(&plan); err != nil {
		return Plan{}, err
	}
	if strings.TrimSpace(plan.Dir) == "" {
		return Plan{}, apperrors.Validation("Manifest has no folder.")
	}
	for _, it := range plan.Items {
		if err := it.validate(); err != nil {
			return Plan{}, err
		}
	}
	return plan, nil
}

// Invert returns the plan that undoes p.
func (p Plan) Invert() Plan {
	out := Plan{Dir: p.Dir, Items: make([]PlanItem, len(p.Items))}
	for i, it := range p.Items {
		out.Items[i] = PlanItem{OldName: it.NewName, NewName: it.OldName, Ordinal: it.Ordinal}
	}
	return out
}
