package entity

import "fmt"

// Observation código y mensaje devueltos por WSFE (Obs o Err).
type Observation struct {
	Code int
	Msg  string
}

func (o Observation) String() string {
	return fmt.Sprintf("[%d] %s", o.Code, o.Msg)
}
