package fundledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const portfolioPrefix = "portfolio_"

// Store persists portfolios and standalone positions as JSON files in a directory.
//
// A portfolio named "main" is stored in "portfolio_main.json", a standalone
// position on fund "YKT" in "YKT.json".
type Store struct {
	Dir string
}

// NewStore returns a Store on dir. The directory is created on the first save.
func NewStore(dir string) *Store { return &Store{Dir: dir} }

func (s *Store) portfolioPath(name string) string {
	return filepath.Join(s.Dir, portfolioPrefix+name+".json")
}

func (s *Store) positionPath(code string) string {
	return filepath.Join(s.Dir, NormalizeCode(code)+".json")
}

// Portfolios returns the names of the portfolios in the store, sorted.
func (s *Store) Portfolios() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.Dir, portfolioPrefix+"*.json"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(f), portfolioPrefix), ".json")
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// LoadPortfolio reads the portfolio called name.
func (s *Store) LoadPortfolio(name string) (*Portfolio, error) {
	path := s.portfolioPath(name)
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := DecodePortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode portfolio file %q: %w", path, err)
	}
	return p, nil
}

// SavePortfolio writes the portfolio to the file of its name.
func (s *Store) SavePortfolio(p *Portfolio) error {
	return s.write(s.portfolioPath(p.Name()), func(f *os.File) error { return EncodePortfolio(f, p) })
}

// LoadPosition reads the standalone position on fund code.
func (s *Store) LoadPosition(code string) (*Position, error) {
	path := s.positionPath(code)
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := DecodePosition(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode position file %q: %w", path, err)
	}
	if p.Code() != NormalizeCode(code) {
		return nil, fmt.Errorf("%w: file %q holds fund %s, want %s", ErrCodeMismatch, path, p.Code(), NormalizeCode(code))
	}
	return p, nil
}

// SavePosition writes a standalone position to the file of its code.
func (s *Store) SavePosition(p *Position) error {
	return s.write(s.positionPath(p.Code()), func(f *os.File) error { return EncodePosition(f, p) })
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q: %w", ErrMissingRecord, path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	return f, nil
}

// write replaces the file at path with the content produced by encode.
// The content is first written to a temporary file in the same directory.
func (s *Store) write(path string, encode func(*os.File) error) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("could not create directory %q: %w", s.Dir, err)
	}
	tmp, err := os.CreateTemp(s.Dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := encode(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("could not encode %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}
