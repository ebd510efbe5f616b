// Package storage guarda los PDF generados en un directorio (afero.Fs: disco en producción, memoria en tests).
package storage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/facturador-afip/internal/domain"
)

// PDFStore implementa billing.PDFStore sobre un afero.Fs.
type PDFStore struct {
	fs  afero.Fs
	dir string
}

// NewPDFStore crea el directorio de salida si no existe.
func NewPDFStore(fs afero.Fs, dir string) (*PDFStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return &PDFStore{fs: fs, dir: dir}, nil
}

// NewOSPDFStore atajo sobre el sistema de archivos real.
func NewOSPDFStore(dir string) (*PDFStore, error) {
	return NewPDFStore(afero.NewOsFs(), dir)
}

// Save escribe el archivo de forma atómica (temporal + rename).
func (s *PDFStore) Save(name string, data []byte) error {
	if err := validName(name); err != nil {
		return err
	}
	target := s.path(name)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: escribir %s: %w", name, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("storage: renombrar %s: %w", name, err)
	}
	return nil
}

// Open lee el archivo; domain.ErrNotFound si no existe.
func (s *PDFStore) Open(name string) ([]byte, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: leer %s: %w", name, err)
	}
	return data, nil
}

func (s *PDFStore) path(name string) string { return path.Join(s.dir, name) }

// validName solo nombres simples terminados en .pdf: sin separadores ni "..".
func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") ||
		!strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return fmt.Errorf("%w: nombre de archivo %q inválido", domain.ErrInvalidInput, name)
	}
	return nil
}
