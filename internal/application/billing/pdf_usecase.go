package billing

import (
	"fmt"
	"path"
	"strings"

	"github.com/jhoicas/facturador-afip/internal/domain"
)

// PDFUseCase entrega los PDF ya generados por el flujo de emisión.
type PDFUseCase struct {
	store PDFStore
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(store PDFStore) *PDFUseCase {
	return &PDFUseCase{store: store}
}

// Download devuelve el contenido del PDF.
//
// Retorna:
//   - domain.ErrInvalidInput si el nombre no es un archivo .pdf simple.
//   - domain.ErrNotFound     si el archivo no existe.
func (uc *PDFUseCase) Download(filename string) ([]byte, error) {
	if filename == "" || path.Base(filename) != filename || !strings.EqualFold(path.Ext(filename), ".pdf") {
		return nil, fmt.Errorf("%w: nombre de archivo %q inválido", domain.ErrInvalidInput, filename)
	}
	data, err := uc.store.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("pdf %s: %w", filename, err)
	}
	return data, nil
}
