package ledger

import (
	"fmt"
	"os"
	"path/filepath"
)

// writer owns the durable side of the store: appends to the log and full
// rewrites. A rewrite goes through a temp file in the same directory plus
// an atomic rename, so a concurrent reader of the file never observes a
// half-written store.
type writer struct {
	path string
}

func (w *writer) ensureDir() error {
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnwritable, err)
		}
	}
	return nil
}

// appendUnit adds one unit to the end of the log, creating it if absent.
func (w *writer) appendUnit(unit []byte) error {
	if err := w.ensureDir(); err != nil {
		return err
	}
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnwritable, err)
	}
	// one write per unit keeps the unit contiguous in the file
	_, werr := f.Write(append(unit, '\n'))
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnwritable, werr)
	}
	if cerr != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnwritable, cerr)
	}
	return nil
}

// rewriteAll replaces the entire store contents with the given ordered
// units.
func (w *writer) rewriteAll(units [][]byte) error {
	if err := w.ensureDir(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(w.path), filepath.Base(w.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnwritable, err)
	}
	defer os.Remove(tmp.Name())

	for _, u := range units {
		if _, err := tmp.Write(append(u, '\n')); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: %v", ErrStoreUnwritable, err)
		}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrStoreUnwritable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnwritable, err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnwritable, err)
	}
	return nil
}
