// Package directory resuelve los datos visibles del receptor (razón social, domicilio y condición frente al IVA).
package directory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	"github.com/jhoicas/facturador-afip/pkg/afip"
)

// UnknownName razón social impresa cuando el receptor no está en el directorio.
const UnknownName = "Cliente"

var insurers = []entity.Receiver{
	{
		DocNro:      "30500017704",
		RazonSocial: "LA SEGUNDA COOPERATIVA LTDA DE SEGUROS GENERALES",
		Domicilio:   "Juan Manuel De Rosas 957 - Rosario Norte, Santa Fe",
	},
	{
		DocNro:      "30546744449",
		RazonSocial: "MERCANTIL ANDINA SEGUROS SA",
		Domicilio:   "Av. Corrientes 330 - CABA, Buenos Aires",
	},
	{
		DocNro:      "30682305009",
		RazonSocial: "LA CAJA DE SEGUROS SA",
		Domicilio:   "Av. Belgrano 1370 - CABA, Buenos Aires",
	},
	{
		// el dígito verificador no valida; se conserva como dato de impresión
		DocNro:      "30601327416",
		RazonSocial: "TRIUNFO COOPERATIVA DE SEGUROS LTDA",
		Domicilio:   "Av. Corrientes 327 - CABA, Buenos Aires",
	},
}

// Directory tabla de receptores conocidos por número de documento. Inmutable tras su creación.
type Directory struct {
	byDoc map[string]entity.Receiver
}

// New crea el directorio con las aseguradoras incorporadas.
func New() *Directory {
	d := &Directory{byDoc: make(map[string]entity.Receiver, len(insurers))}
	for _, r := range insurers {
		r.DocTipo = afip.DocTipoCUIT
		r.CondicionIVAID = afip.CondIVAResponsableInscripto
		r.CondicionIVA = afip.VATConditionName(afip.CondIVAResponsableInscripto)
		d.byDoc[r.DocNro] = r
	}
	return d
}

// Len cantidad de receptores cargados.
func (d *Directory) Len() int { return len(d.byDoc) }

// Lookup implementa billing.ReceiverDirectory. Un receptor desconocido se imprime como "Cliente";
// la condición frente al IVA por defecto es Consumidor Final para DNI y Responsable Inscripto para CUIT.
func (d *Directory) Lookup(docTipo int, docNro string) (entity.Receiver, bool) {
	digits := afip.OnlyDigits(docNro)
	if r, ok := d.byDoc[digits]; ok {
		r.DocTipo = docTipo
		return r, true
	}
	cond := afip.CondIVAResponsableInscripto
	if docTipo == afip.DocTipoDNI || docTipo == afip.DocTipoConsumidorFinal {
		cond = afip.CondIVAConsumidorFinal
	}
	return entity.Receiver{
		DocTipo:        docTipo,
		DocNro:         digits,
		RazonSocial:    UnknownName,
		CondicionIVA:   afip.VATConditionName(cond),
		CondicionIVAID: cond,
	}, false
}

// LoadFile agrega receptores desde un CSV separado por ';' codificado en ISO-8859-1
// (cuit;razon_social;domicilio;condicion_iva). Las líneas vacías o que empiezan con '#' se ignoran;
// una primera línea cuyo documento no es numérico se toma como encabezado.
func (d *Directory) LoadFile(fs afero.Fs, path string) (int, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("directorio: abrir %s: %w", path, err)
	}
	defer f.Close()
	return d.Load(f)
}

// Load lee el CSV desde r. Ver LoadFile.
func (d *Directory) Load(r io.Reader) (int, error) {
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var n int
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("directorio: línea %d: %w", line, err)
		}
		doc := afip.OnlyDigits(rec[0])
		if doc == "" {
			if line == 1 {
				continue
			}
			return n, fmt.Errorf("directorio: línea %d: documento vacío", line)
		}
		if len(rec) < 2 {
			return n, fmt.Errorf("directorio: línea %d: se esperan al menos documento y razón social", line)
		}
		recv := entity.Receiver{
			DocTipo:     afip.DocTypeFor(doc),
			DocNro:      doc,
			RazonSocial: strings.TrimSpace(rec[1]),
		}
		if len(rec) > 2 {
			recv.Domicilio = strings.TrimSpace(rec[2])
		}
		cond := ""
		if len(rec) > 3 {
			cond = strings.TrimSpace(rec[3])
		}
		if cond == "" {
			cond = afip.VATConditionName(afip.CondIVAResponsableInscripto)
		}
		recv.CondicionIVA = cond
		recv.CondicionIVAID = afip.VATConditionID(cond)
		if recv.CondicionIVAID == 0 {
			return n, fmt.Errorf("directorio: línea %d: condición frente al IVA %q desconocida", line, cond)
		}
		d.byDoc[doc] = recv
		n++
	}
}
