// Package tags counts and edits the comma-separated tags of caption files.
package tags

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/dataset"
	"github.com/oukeidos/lorakit/internal/files"
	"github.com/oukeidos/lorakit/internal/logger"
)

// Separator joins tags when a caption is rewritten.
const Separator = ", "

// Tokenize splits caption content on commas, trims each tag and drops the
// empty ones.
func Tokenize(content string) []string {
	parts := strings.Split(content, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Dedupe drops repeated tags, keeping the first occurrence of each.
func Dedupe(content string) string {
	seen := make(map[string]bool)
	var kept []string
	for _, tag := range Tokenize(content) {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		kept = append(kept, tag)
	}
	return strings.Join(kept, Separator)
}

// Entry is one tag and the number of times it occurs across the folder.
type Entry struct {
	Tag   string
	Count int
}

// Index is the tag frequency table of a folder. It is safe for concurrent
// use; a rescan replaces the entries in place.
type Index struct {
	dir string

	mu      sync.RWMutex
	entries []Entry
}

// Scan reads every caption file of dir and counts its lowercased tags.
func Scan(dir string) (*Index, error) {
	idx := &Index{dir: dir}
	if err := idx.Rescan(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *Index) Dir() string { return idx.dir }

// Rescan rebuilds the index from disk. Unreadable files are logged and skipped.
func (idx *Index) Rescan() error {
	captions, err := dataset.ListCaptions(idx.dir)
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, path := range captions {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable caption", "path", path, "error", err)
			continue
		}
		for _, tag := range Tokenize(string(data)) {
			counts[strings.ToLower(tag)]++
		}
	}

	entries := make([]Entry, 0, len(counts))
	for tag, n := range counts {
		entries = append(entries, Entry{Tag: tag, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Tag < entries[j].Tag
	})

	idx.mu.Lock()
	idx.entries = entries
	idx.mu.Unlock()
	logger.Debug("Tag index rebuilt", "dir", idx.dir, "files", len(captions), "tags", len(entries))
	return nil
}

// Entries returns a copy of all entries, most frequent first.
func (idx *Index) Entries() []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]Entry(nil), idx.entries...)
}

// Count returns how often tag occurs, case-insensitively.
func (idx *Index) Count(tag string) int {
	tag = strings.ToLower(strings.TrimSpace(tag))
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	for _, e := range idx.entries {
		if e.Tag == tag {
			return e.Count
		}
	}
	return 0
}

// Filter returns the entries whose tag contains query, case-insensitively.
// It works on the cached entries only.
func (idx *Index) Filter(query string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return idx.Entries()
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var out []Entry
	for _, e := range idx.entries {
		if strings.Contains(e.Tag, query) {
			out = append(out, e)
		}
	}
	return out
}

// Remove deletes tag from every caption file that carries it and rescans.
// Files without the tag are not rewritten.
func (idx *Index) Remove(tag string) (dataset.Report, error) {
	var report dataset.Report
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return report, apperrors.Validation("Select a tag to remove.")
	}
	captions, err := dataset.ListCaptions(idx.dir)
	if err != nil {
		return report, err
	}

	for _, path := range captions {
		report.Processed++
		data, err := os.ReadFile(path)
		if err != nil {
			report.Fail(path, err)
			continue
		}
		all := Tokenize(string(data))
		kept := all[:0:0]
		for _, t := range all {
			if !strings.EqualFold(t, tag) {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(all) {
			continue
		}
		if err := files.RewriteFile(path, []byte(strings.Join(kept, Separator))); err != nil {
			report.Fail(path, err)
			continue
		}
		report.Changed++
	}
	logger.Info("Tag removed", "dir", idx.dir, "tag", tag, "files", report.Changed, "failed", len(report.Failed))

	if err := idx.Rescan(); err != nil {
		return report, err
	}
	return report, nil
}

// DedupeFolder applies Dedupe to every caption file of dir, rewriting only
// the files that change.
func DedupeFolder(dir string) (dataset.Report, error) {
	var report dataset.Report
	captions, err := dataset.ListCaptions(dir)
	if err != nil {
		return report, err
	}
	for _, path := range captions {
		report.Processed++
		data, err := os.ReadFile(path)
		if err != nil {
			report.Fail(path, err)
			continue
		}
		content := string(data)
		deduped := Dedupe(content)
		if deduped == content {
			continue
		}
		if err := files.RewriteFile(path, []byte(deduped)); err != nil {
			report.Fail(path, err)
			continue
		}
		report.Changed++
	}
	logger.Info("Duplicate tags removed", "dir", dir, "changed", report.Changed, "failed", len(report.Failed))
	return report, nil
}
