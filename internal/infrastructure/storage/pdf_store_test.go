package storage_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/infrastructure/storage"
)

func TestPDFStore_SaveOpen(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := storage.NewPDFStore(fs, "/facturas")
	require.NoError(t, err)

	name := "factura_27239676931_00002_00000007.pdf"
	require.NoError(t, s.Save(name, []byte("%PDF-1.3")))

	got, err := s.Open(name)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), got)

	exists, err := afero.Exists(fs, "/facturas/"+name+".tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPDFStore_Sobrescribe(t *testing.T) {
	s, err := storage.NewPDFStore(afero.NewMemMapFs(), "/facturas")
	require.NoError(t, err)
	require.NoError(t, s.Save("a.pdf", []byte("uno")))
	require.NoError(t, s.Save("a.pdf", []byte("dos")))

	got, err := s.Open("a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "dos", string(got))
}

func TestPDFStore_NoExiste(t *testing.T) {
	s, err := storage.NewPDFStore(afero.NewMemMapFs(), "/facturas")
	require.NoError(t, err)
	_, err = s.Open("nada.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPDFStore_NombresInvalidos(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/secreto.pdf", []byte("x"), 0o644))
	s, err := storage.NewPDFStore(fs, "/facturas")
	require.NoError(t, err)

	for _, name := range []string{"", "../secreto.pdf", "..\\secreto.pdf", "sub/a.pdf", "factura.txt", "..pdf"} {
		_, err := s.Open(name)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
		assert.ErrorIs(t, s.Save(name, []byte("x")), domain.ErrInvalidInput, name)
	}
}
