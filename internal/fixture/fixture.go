// Package fixture provides test fixtures shared by a whole test binary: a
// session temporary directory and synthetic SEG-Y files built once per
// parameter set.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"segysak/pkg/synth"
)

// TempDataDir is the name prefix of the session directory.
const TempDataDir = "test_data_temp"

// Size is the side length of the synthetic test volumes.
const Size = 10

// Param selects one synthetic volume.
type Param struct {
	ID   string
	N    int
	File string
	Skew bool
}

// Params are the regular and skewed volumes every geometry test runs against.
var Params = []Param{
	{ID: "reg", N: Size, File: "test_reg.segy", Skew: false},
	{ID: "skewed", N: Size, File: "test_skew.segy", Skew: true},
}

// Session owns a temporary directory for the lifetime of a test binary.
// Create it in TestMain and Close it after m.Run.
type Session struct {
	dir string

	mu    sync.Mutex
	files map[Param]*built
}

type built struct {
	once sync.Once
	path string
	err  error
}

// NewSession creates the session directory.
func NewSession() (*Session, error) {
	dir, err := os.MkdirTemp("", TempDataDir+"-*")
	if err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &Session{dir: dir, files: make(map[Param]*built)}, nil
}

// Dir returns the session directory.
func (s *Session) Dir() string {
	return s.dir
}

// SEGY returns the path of the synthetic volume for p, building it on first
// use. Later calls with the same parameters reuse the file.
func (s *Session) SEGY(tb testing.TB, p Param) string {
	tb.Helper()

	s.mu.Lock()
	b, ok := s.files[p]
	if !ok {
		b = &built{}
		s.files[p] = b
	}
	s.mu.Unlock()

	b.once.Do(func() {
		b.path = filepath.Join(s.dir, p.File)
		b.err = synth.CreateTempSEGY(p.N, b.path, p.Skew)
	})
	if b.err != nil {
		tb.Fatalf("build %s fixture: %v", p.ID, b.err)
	}
	return b.path
}

// Close removes the session directory and everything in it.
func (s *Session) Close() error {
	return os.RemoveAll(s.dir)
}

// Run is a TestMain helper: it opens a session, stores it in *session, runs
// the tests and cleans up. It returns the exit code for os.Exit.
func Run(m *testing.M, session **Session) int {
	s, err := NewSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	*session = s
	defer s.Close()
	return m.Run()
}
