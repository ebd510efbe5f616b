// admintoken emite un JWT de administrador para POST /limpiar_cache.
//
//	ADMIN_JWT_SECRET=... go run ./cmd/admintoken operador 60
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/facturador-afip/pkg/config"
	pkgjwt "github.com/jhoicas/facturador-afip/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuración:", err)
		os.Exit(1)
	}

	subject := "admin"
	if len(os.Args) > 1 {
		subject = os.Args[1]
	}
	minutes := 60
	if len(os.Args) > 2 {
		if minutes, err = strconv.Atoi(os.Args[2]); err != nil || minutes <= 0 {
			fmt.Fprintln(os.Stderr, "minutos inválidos:", os.Args[2])
			os.Exit(1)
		}
	}

	tok, err := pkgjwt.Generate(cfg.Admin.JWTSecret, subject, pkgjwt.RoleAdmin, cfg.Admin.JWTIssuer, minutes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
