package afip

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/youmark/pkcs8"
	"golang.org/x/crypto/pkcs12"

	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
)

// Credentials certificado X.509 emitido por AFIP y su llave privada.
type Credentials struct {
	Cert *x509.Certificate
	Key  crypto.Signer
}

// NotAfter vencimiento del certificado.
func (c Credentials) NotAfter() time.Time { return c.Cert.NotAfter }

// LoadCredentials carga las credenciales del emisor: .p12/.pfx o par PEM (certificado + llave).
// La llave puede ser PKCS#1, PKCS#8 o PKCS#8 cifrada (con KeyPassword). Todo error envuelve domain.ErrSigning.
func LoadCredentials(issuer entity.Issuer) (Credentials, error) {
	if issuer.CertPath == "" {
		return Credentials{}, fmt.Errorf("%w: emisor %s sin certificado configurado", domain.ErrSigning, issuer.CUIT)
	}
	switch strings.ToLower(filepath.Ext(issuer.CertPath)) {
	case ".p12", ".pfx":
		return loadP12(issuer.CertPath, issuer.KeyPassword)
	}

	certPEM, err := os.ReadFile(issuer.CertPath)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: leer certificado: %v", domain.ErrSigning, err)
	}
	keyPath := issuer.KeyPath
	if keyPath == "" {
		keyPath = issuer.CertPath // cert y llave en el mismo PEM
	}
	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: leer llave privada: %v", domain.ErrSigning, err)
	}
	return ParseCredentialsPEM(certPEM, keyPEM, []byte(issuer.KeyPassword))
}

func loadP12(path, password string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: leer p12: %v", domain.ErrSigning, err)
	}
	priv, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: decodificar p12: %v", domain.ErrSigning, err)
	}
	signer, ok := priv.(crypto.Signer)
	if !ok {
		return Credentials{}, fmt.Errorf("%w: llave del p12 no soporta firma", domain.ErrSigning)
	}
	return checkPair(cert, signer)
}

// ParseCredentialsPEM interpreta certificado y llave en PEM y verifica que sean pareja.
func ParseCredentialsPEM(certPEM, keyPEM, password []byte) (Credentials, error) {
	cert, err := parseCertificate(certPEM)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}
	key, err := parsePrivateKey(keyPEM, password)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}
	return checkPair(cert, key)
}

func parseCertificate(data []byte) (*x509.Certificate, error) {
	for len(data) > 0 {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type == "CERTIFICATE" {
			return x509.ParseCertificate(block.Bytes)
		}
	}
	return nil, errors.New("no se encontró un bloque CERTIFICATE")
}

func parsePrivateKey(data, password []byte) (crypto.Signer, error) {
	for len(data) > 0 {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		var (
			keyAny any
			err    error
		)
		switch block.Type {
		case "RSA PRIVATE KEY":
			keyAny, err = x509.ParsePKCS1PrivateKey(block.Bytes)
		case "PRIVATE KEY":
			keyAny, err = x509.ParsePKCS8PrivateKey(block.Bytes)
		case "EC PRIVATE KEY":
			keyAny, err = x509.ParseECPrivateKey(block.Bytes)
		case "ENCRYPTED PRIVATE KEY":
			if len(password) == 0 {
				return nil, errors.New("la llave está cifrada y no se configuró key_password")
			}
			keyAny, err = pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("parsear %s: %w", block.Type, err)
		}
		switch k := keyAny.(type) {
		case *rsa.PrivateKey:
			return k, nil
		case *ecdsa.PrivateKey:
			return k, nil
		default:
			return nil, fmt.Errorf("tipo de llave no soportado %T", keyAny)
		}
	}
	return nil, errors.New("no se encontró una llave privada en el PEM")
}

func checkPair(cert *x509.Certificate, key crypto.Signer) (Credentials, error) {
	type equaler interface{ Equal(crypto.PublicKey) bool }
	pub, ok := key.Public().(equaler)
	if !ok || !pub.Equal(cert.PublicKey) {
		return Credentials{}, fmt.Errorf("%w: la llave privada no corresponde al certificado", domain.ErrSigning)
	}
	return Credentials{Cert: cert, Key: key}, nil
}
