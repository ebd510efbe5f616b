package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnmarshalJSON acepta CUIT, punto de venta y tipo de comprobante como número o como string:
// los clientes existentes envían "cuit_receptor": 30500017704 y "punto_venta": "2".
func (r *IssueInvoiceRequest) UnmarshalJSON(data []byte) error {
	type plain IssueInvoiceRequest
	aux := struct {
		*plain
		CUITEmisor   looseString `json:"cuit_emisor"`
		CUITReceptor looseString `json:"cuit_receptor"`
		PuntoVenta   looseInt    `json:"punto_venta"`
		TipoCbte     looseInt    `json:"tipo_cbte"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.CUITEmisor = string(aux.CUITEmisor)
	r.CUITReceptor = string(aux.CUITReceptor)
	r.PuntoVenta = int(aux.PuntoVenta)
	r.TipoCbte = int(aux.TipoCbte)
	return nil
}

// looseString string o número JSON; el número se conserva tal como vino.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("se esperaba string o número: %w", err)
	}
	if strings.ContainsAny(n.String(), ".eE-+") {
		return fmt.Errorf("número de documento inválido %s", n)
	}
	*s = looseString(n.String())
	return nil
}

// looseInt entero JSON o string con un entero ("2").
type looseInt int

func (i *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("entero inválido %q", v)
		}
		*i = looseInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*i = looseInt(n)
	return nil
}
