// check_cert verifica offline las credenciales de un emisor: lee certificado y clave,
// comprueba que formen un par y firma un loginTicketRequest de prueba.
//
//	go run ./cmd/check_cert 27239676931
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	infraafip "github.com/jhoicas/facturador-afip/internal/infrastructure/afip"
	"github.com/jhoicas/facturador-afip/pkg/afip"
	"github.com/jhoicas/facturador-afip/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("❌ configuración:", err)
		os.Exit(1)
	}

	var filter string
	if len(os.Args) > 1 {
		filter = afip.OnlyDigits(os.Args[1])
	}

	fmt.Println("🔍 DIAGNÓSTICO DE CREDENCIALES AFIP")
	fmt.Println("-----------------------------------")

	failed := 0
	for _, is := range cfg.AFIP.Issuers {
		if filter != "" && is.CUIT != filter {
			continue
		}
		if !check(cfg, is) {
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func check(cfg *config.Config, is config.IssuerConfig) bool {
	fmt.Printf("\n📂 %s (%s)\n   cert: %s\n", is.CUIT, is.RazonSocial, is.CertPath)

	creds, err := infraafip.LoadCredentials(entity.Issuer{
		CUIT:        is.CUIT,
		CertPath:    is.CertPath,
		KeyPath:     is.KeyPath,
		KeyPassword: is.KeyPassword,
	})
	if err != nil {
		fmt.Println("   ❌ credenciales:", err)
		return false
	}

	notAfter := creds.NotAfter()
	fmt.Printf("   ✅ par certificado/clave válido, sujeto %q\n", creds.Cert.Subject.CommonName)
	if time.Now().After(notAfter) {
		fmt.Printf("   ❌ certificado vencido el %s\n", notAfter.Format(time.RFC3339))
		return false
	}
	fmt.Printf("   vence: %s\n", notAfter.Format(time.RFC3339))

	ticket, err := infraafip.NewLoginTicket(cfg.AFIP.Service, time.Now(), cfg.AFIP.TicketBackdate, cfg.AFIP.TicketTTL)
	if err != nil {
		fmt.Println("   ❌ ticket:", err)
		return false
	}
	xml, err := ticket.XML()
	if err != nil {
		fmt.Println("   ❌ ticket:", err)
		return false
	}
	cms, err := infraafip.SignTicket(xml, creds)
	if err != nil {
		fmt.Println("   ❌ firma CMS:", err)
		return false
	}
	fmt.Printf("   ✅ CMS firmado (%d bytes base64)\n", len(cms))
	return true
}
