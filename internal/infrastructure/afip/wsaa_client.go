package afip

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/jonboulle/clockwork"

	"github.com/jhoicas/facturador-afip/internal/domain"
	"github.com/jhoicas/facturador-afip/internal/domain/entity"
	"github.com/jhoicas/facturador-afip/pkg/logger"
)

const wsaaNS = "http://wsaa.view.sua.dvadac.desein.afip.gov"

type loginCmsRequest struct {
	XMLName xml.Name `xml:"loginCms"`
	Xmlns   string   `xml:"xmlns,attr"`
	In0     string   `xml:"in0"`
}

type loginCmsResponse struct {
	XMLName xml.Name `xml:"loginCmsResponse"`
	Return  string   `xml:"loginCmsReturn"`
}

// WSAAClient cliente del servicio de autenticación (loginCms).
type WSAAClient struct {
	url           string
	soap          *soapTransport
	clock         clockwork.Clock
	tokenValidity time.Duration
}

// NewWSAAClient crea el cliente. tokenValidity se usa solo si la respuesta no informa expirationTime.
func NewWSAAClient(url string, httpClient *http.Client, clock clockwork.Clock, tokenValidity time.Duration, log *logger.Logger) *WSAAClient {
	return &WSAAClient{
		url:           url,
		soap:          &soapTransport{httpClient: httpClient, log: log},
		clock:         clock,
		tokenValidity: tokenValidity,
	}
}

// LoginCMS envía el TRA firmado y devuelve token, sign y vencimiento.
// Un fault de WSAA se devuelve como *domain.FaultError con Kind domain.ErrAuthFault.
func (c *WSAAClient) LoginCMS(ctx context.Context, cmsB64 string) (entity.Credential, error) {
	var resp loginCmsResponse
	req := loginCmsRequest{Xmlns: wsaaNS, In0: cmsB64}
	if err := c.soap.call(ctx, c.url, "", req, &resp, domain.ErrAuthFault); err != nil {
		return entity.Credential{}, err
	}
	return c.parseTicketResponse(resp.Return)
}

// parseTicketResponse interpreta loginTicketResponse: header/expirationTime y credentials/{token,sign}.
func (c *WSAAClient) parseTicketResponse(ticket string) (entity.Credential, error) {
	ticket = strings.TrimSpace(ticket)
	if ticket == "" {
		return entity.Credential{}, fmt.Errorf("%w: loginCmsReturn vacío", domain.ErrResponseShape)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(ticket); err != nil {
		return entity.Credential{}, fmt.Errorf("%w: loginTicketResponse ilegible: %v", domain.ErrResponseShape, err)
	}
	root := doc.SelectElement("loginTicketResponse")
	if root == nil {
		return entity.Credential{}, fmt.Errorf("%w: falta loginTicketResponse", domain.ErrResponseShape)
	}
	token := elementText(root, "credentials/token")
	sign := elementText(root, "credentials/sign")
	if token == "" || sign == "" {
		return entity.Credential{}, fmt.Errorf("%w: loginTicketResponse sin token o sign", domain.ErrResponseShape)
	}

	expires := c.clock.Now().Add(c.tokenValidity)
	if raw := elementText(root, "header/expirationTime"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return entity.Credential{}, fmt.Errorf("%w: expirationTime %q: %v", domain.ErrResponseShape, raw, err)
		}
		expires = t
	}
	return entity.Credential{Token: token, Sign: sign, ExpiresAt: expires}, nil
}

func elementText(root *etree.Element, path string) string {
	if el := root.FindElement(path); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}
