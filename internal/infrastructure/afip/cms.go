package afip

import (
	"encoding/base64"
	"fmt"

	"go.mozilla.org/pkcs7"

	"github.com/jhoicas/facturador-afip/internal/domain"
)

// SignTicket firma el TRA como CMS SignedData con el contenido incluido (SHA-256)
// y lo devuelve en Base64, tal como lo espera loginCms.
func SignTicket(ticketXML []byte, creds Credentials) (string, error) {
	if len(ticketXML) == 0 {
		return "", fmt.Errorf("%w: ticket vacío", domain.ErrSigning)
	}
	if creds.Cert == nil || creds.Key == nil {
		return "", fmt.Errorf("%w: credenciales incompletas", domain.ErrSigning)
	}
	sd, err := pkcs7.NewSignedData(ticketXML)
	if err != nil {
		return "", fmt.Errorf("%w: iniciar SignedData: %v", domain.ErrSigning, err)
	}
	sd.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)
	if err := sd.AddSigner(creds.Cert, creds.Key, pkcs7.SignerInfoConfig{}); err != nil {
		return "", fmt.Errorf("%w: agregar firmante: %v", domain.ErrSigning, err)
	}
	der, err := sd.Finish()
	if err != nil {
		return "", fmt.Errorf("%w: cerrar SignedData: %v", domain.ErrSigning, err)
	}
	return base64.StdEncoding.EncodeToString(der), nil
}
