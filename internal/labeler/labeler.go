// Package labeler edits the caption of one image at a time.
package labeler

import (
	"fmt"
	"os"
	"strings"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/dataset"
	"github.com/oukeidos/lorakit/internal/files"
	"github.com/oukeidos/lorakit/internal/logger"
)

// Session walks the image/caption pairs of one folder. The caption of the
// current pair is held as an editable draft until Save.
type Session struct {
	dir   string
	pairs []dataset.Pair
	index int
	saved string
	draft string
}

// Open pairs the images and captions of dir. A count or name mismatch is an
// error and leaves no session.
func Open(dir string) (*Session, error) {
	pairs, err := dataset.PairByBasename(dir)
	if err != nil {
		return nil, err
	}
	s := &Session{dir: dir, pairs: pairs}
	if len(pairs) == 0 {
		return s, nil
	}
	if err := s.load(0); err != nil {
		return nil, err
	}
	logger.Info("Label folder opened", "dir", dir, "pairs", len(pairs))
	return s, nil
}

func (s *Session) load(i int) error {
	data, err := os.ReadFile(s.pairs[i].CaptionPath)
	if err != nil {
		return apperrors.Filesystem("read", s.pairs[i].CaptionPath, err)
	}
	s.index = i
	s.saved = string(data)
	s.draft = s.saved
	return nil
}

func (s *Session) Dir() string { return s.dir }

func (s *Session) Len() int { return len(s.pairs) }

func (s *Session) Index() int { return s.index }

// Empty reports whether there is no pair to show, either because the folder
// had none or the session was closed.
func (s *Session) Empty() bool { return len(s.pairs) == 0 }

// Current returns the current pair and its draft caption.
func (s *Session) Current() (dataset.Pair, string, bool) {
	if s.Empty() {
		return dataset.Pair{}, "", false
	}
	return s.pairs[s.index], s.draft, true
}

func (s *Session) SetDraft(text string) { s.draft = text }

func (s *Session) Draft() string { return s.draft }

// Dirty reports whether the draft differs from the caption on disk.
func (s *Session) Dirty() bool { return s.draft != s.saved }

// Save overwrites the current caption file with the draft.
func (s *Session) Save() error {
	if s.Empty() {
		return apperrors.Validation("No folder is open.")
	}
	path := s.pairs[s.index].CaptionPath
	if err := files.RewriteFile(path, []byte(s.draft)); err != nil {
		return apperrors.Filesystem("write", path, err)
	}
	s.saved = s.draft
	logger.Info("Caption saved", "path", path, "caption", s.draft)
	return nil
}

// Append adds text to the end of the current caption file as is. The draft
// is trimmed before text joins it, so it differs from the file (and reports
// Dirty) when the caption ended in whitespace. Blank text is ignored.
func (s *Session) Append(text string) error {
	if s.Empty() {
		return apperrors.Validation("No folder is open.")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	path := s.pairs[s.index].CaptionPath
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return apperrors.Filesystem("open", path, err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return apperrors.Filesystem("append to", path, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.Filesystem("close", path, err)
	}
	s.saved += text
	s.draft = strings.TrimSpace(s.draft) + text
	logger.Info("Caption appended", "path", path, "text", text)
	return nil
}

// Seek jumps to pair i, discarding an unsaved draft.
func (s *Session) Seek(i int) error {
	if i < 0 || i >= len(s.pairs) {
		return apperrors.Validation(fmt.Sprintf("Index %d is out of range (0-%d).", i, len(s.pairs)-1))
	}
	return s.load(i)
}

// Pairs returns the image/caption pairs in display order.
func (s *Session) Pairs() []dataset.Pair {
	return append([]dataset.Pair(nil), s.pairs...)
}

// Next moves to the following pair and reloads its caption, discarding an
// unsaved draft. It stays on the last pair.
func (s *Session) Next() error {
	if s.Empty() || s.index >= len(s.pairs)-1 {
		return nil
	}
	return s.load(s.index + 1)
}

// Previous moves to the preceding pair. It stays on the first pair.
func (s *Session) Previous() error {
	if s.Empty() || s.index == 0 {
		return nil
	}
	return s.load(s.index - 1)
}

// Close forgets the folder.
func (s *Session) Close() {
	s.pairs = nil
	s.index = 0
	s.saved = ""
	s.draft = ""
}
