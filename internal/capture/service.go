package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/oukeidos/lorakit/internal/apperrors"
	"github.com/oukeidos/lorakit/internal/files"
	"github.com/oukeidos/lorakit/internal/logger"
)

// TimestampLayout names screenshot files.
const TimestampLayout = "2006-01-02_15-04-05"

// DefaultDir is where screenshots go when no folder is chosen.
const DefaultDir = "screenshots"

var ErrAlreadyStarted = errors.New("capture service already started")

type StatusKind int

const (
	StatusSaved StatusKind = iota
	StatusFailed
	StatusDropped
	StatusStopped
)

// Status is one notification from the capture worker.
type Status struct {
	Kind StatusKind
	Path string
	Err  error
}

func (s Status) String() string {
	switch s.Kind {
	case StatusSaved:
		return "Saved " + filepath.Base(s.Path)
	case StatusFailed:
		return "Capture failed: " + apperrors.PublicMessage(s.Err)
	case StatusDropped:
		return "Capture skipped: still saving the previous one"
	case StatusStopped:
		return "Capture stopped"
	default:
		return fmt.Sprintf("status(%d)", int(s.Kind))
	}
}

type Option func(*Service)

// WithClock replaces time.Now for file naming.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithQueueSize sets how many triggers may wait behind the one being saved.
func WithQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.queueSize = n
		}
	}
}

// Service saves one screenshot per trigger. A single worker handles the
// triggers in order, so captures never race on the file system.
type Service struct {
	dir       string
	capturer  Capturer
	now       func() time.Time
	log       *slog.Logger
	queueSize int

	requests chan struct{}
	status   chan Status
	stop     chan struct{}
	done     chan struct{}

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once

	// statusMu orders sends on status against its close.
	statusMu     sync.Mutex
	statusClosed bool
}

func NewService(dir string, capturer Capturer, opts ...Option) *Service {
	if dir == "" {
		dir = DefaultDir
	}
	s := &Service{
		dir:       dir,
		capturer:  capturer,
		now:       time.Now,
		log:       logger.With("component", "capture", "dir", dir),
		queueSize: 4,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.requests = make(chan struct{}, s.queueSize)
	s.status = make(chan Status, s.queueSize*2+2)
	return s
}

func (s *Service) Dir() string { return s.dir }

// Status delivers worker notifications. It is closed when the worker exits.
func (s *Service) Status() <-chan Status { return s.status }

// Done is closed when the worker exits.
func (s *Service) Done() <-chan struct{} { return s.done }

// Start launches the worker. It runs until Stop is called or ctx is done.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	go s.run(ctx)
	s.log.Info("Capture service started")
	return nil
}

// Trigger queues a capture. It reports false when the service is stopped or
// the queue is full.
func (s *Service) Trigger() bool {
	select {
	case <-s.stop:
		return false
	case <-s.done:
		return false
	default:
	}
	select {
	case s.requests <- struct{}{}:
		return true
	default:
		s.notify(Status{Kind: StatusDropped})
		return false
	}
}

// Stop ends the worker after the capture in progress, if any, and waits
// for it to exit. Queued triggers are discarded.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.done
	}
}

func (s *Service) run(ctx context.Context) {
	defer func() {
		s.notify(Status{Kind: StatusStopped})
		s.closeStatus()
		close(s.done)
		s.log.Info("Capture service stopped")
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-s.requests:
			path, err := s.CaptureOnce()
			if err != nil {
				s.log.Error("Screenshot failed", "error", err)
				s.notify(Status{Kind: StatusFailed, Err: err})
				continue
			}
			s.notify(Status{Kind: StatusSaved, Path: path})
		}
	}
}

// notify never blocks the worker; a slow reader loses notifications.
// Notifications after the worker exits are discarded.
func (s *Service) notify(st Status) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	if s.statusClosed {
		return
	}
	select {
	case s.status <- st:
	default:
		s.log.Debug("Capture status dropped", "status", st.String())
	}
}

func (s *Service) closeStatus() {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	if !s.statusClosed {
		s.statusClosed = true
		close(s.status)
	}
}

// CaptureOnce grabs a frame and writes it as a timestamped PNG, returning
// the path written. An existing file is never overwritten.
func (s *Service) CaptureOnce() (string, error) {
	img, err := s.capturer.Capture()
	if err != nil {
		return "", apperrors.New(apperrors.KindFilesystem, "Could not capture the screen.", err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", apperrors.Filesystem("create", s.dir, err)
	}
	path, err := files.UniquePath(filepath.Join(s.dir, s.now().Format(TimestampLayout)+".png"))
	if err != nil {
		return "", apperrors.Filesystem("name screenshot in", s.dir, err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", apperrors.Filesystem("encode", path, err)
	}
	if err := files.AtomicWrite(path, buf.Bytes(), 0644); err != nil {
		return "", apperrors.Filesystem("write", path, err)
	}
	s.log.Info("Screenshot saved", "path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return path, nil
}
