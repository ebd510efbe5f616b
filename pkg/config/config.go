package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del microservicio (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	Log   LogConfig
	AFIP  AFIPConfig
	PDF   PDFConfig
	Admin AdminConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration // debe cubrir WSAA + dos llamadas WSFE + PDF
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig nivel del logger (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// AFIPConfig configuración de los web services WSAA / WSFEv1.
type AFIPConfig struct {
	Environment    string        // "homo" (homologación) o "prod"
	WSAAURL        string        // vacío = URL oficial del entorno
	WSFEURL        string        // vacío = URL oficial del entorno
	Service        string        // servicio solicitado en el ticket de acceso (wsfe)
	TicketTTL      time.Duration // ventana del loginTicketRequest (la AFIP impone su propio límite)
	TicketBackdate time.Duration // generationTime = ahora - backdate, tolera relojes desfasados
	TokenValidity  time.Duration // vigencia asumida si la respuesta no trae expirationTime
	RefreshMargin  time.Duration // margen de seguridad antes de renovar el token
	RequestTimeout time.Duration // timeout total del flujo de facturación
	LegacyTLS      bool          // habilita suites RSA para endpoints viejos de la AFIP
	CertDir        string
	IssuersFile    string
	ReceiversFile  string
	Issuers        []IssuerConfig
}

// IssuerConfig emisor habilitado: CUIT, datos fiscales visibles en el PDF y credenciales.
type IssuerConfig struct {
	CUIT              string `mapstructure:"cuit"`
	RazonSocial       string `mapstructure:"razon_social"`
	Domicilio         string `mapstructure:"domicilio"`
	CondicionIVA      string `mapstructure:"condicion_iva"`
	IngresosBrutos    string `mapstructure:"ingresos_brutos"`
	InicioActividades string `mapstructure:"inicio_actividades"`
	CertPath          string `mapstructure:"cert"`
	KeyPath           string `mapstructure:"key"`
	KeyPassword       string `mapstructure:"key_password"`
}

// PDFConfig directorio de salida de los PDF y ruta pública de descarga.
type PDFConfig struct {
	OutputDir  string
	PublicPath string
	LogoPath   string // PNG o JPG opcional impreso junto a los datos del emisor
}

// AdminConfig secreto JWT para los endpoints administrativos (vacío = sin protección).
type AdminConfig struct {
	JWTSecret string
	JWTIssuer string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, AFIP_ENVIRONMENT, AFIP_CERT_DIR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "facturador-afip"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 5000),
			ReadTimeout:  getDuration(v, "HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration(v, "HTTP_WRITE_TIMEOUT", 90*time.Second),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		AFIP: AFIPConfig{
			Environment:    strings.ToLower(getString(v, "AFIP_ENVIRONMENT", "homo")),
			WSAAURL:        getString(v, "AFIP_WSAA_URL", ""),
			WSFEURL:        getString(v, "AFIP_WSFE_URL", ""),
			Service:        getString(v, "AFIP_SERVICE", "wsfe"),
			TicketTTL:      getDuration(v, "AFIP_TICKET_TTL", 10*time.Minute),
			TicketBackdate: getDuration(v, "AFIP_TICKET_BACKDATE", 2*time.Minute),
			TokenValidity:  getDuration(v, "AFIP_TOKEN_VALIDITY", 2*time.Hour),
			RefreshMargin:  getDuration(v, "AFIP_REFRESH_MARGIN", 15*time.Minute),
			RequestTimeout: getDuration(v, "AFIP_REQUEST_TIMEOUT", 60*time.Second),
			LegacyTLS:      getBool(v, "AFIP_LEGACY_TLS", false),
			CertDir:        getString(v, "AFIP_CERT_DIR", "."),
			IssuersFile:    getString(v, "AFIP_ISSUERS_FILE", ""),
			ReceiversFile:  getString(v, "AFIP_RECEIVERS_FILE", ""),
		},
		PDF: PDFConfig{
			OutputDir:  getString(v, "PDF_OUTPUT_DIR", "./facturas"),
			PublicPath: getString(v, "PDF_PUBLIC_PATH", "/descargar_pdf"),
			LogoPath:   getString(v, "PDF_LOGO_PATH", ""),
		},
		Admin: AdminConfig{
			JWTSecret: getString(v, "ADMIN_JWT_SECRET", ""),
			JWTIssuer: getString(v, "ADMIN_JWT_ISSUER", "facturador-afip"),
		},
	}

	if cfg.AFIP.Environment != "homo" && cfg.AFIP.Environment != "prod" {
		return nil, fmt.Errorf("AFIP_ENVIRONMENT inválido %q (usar homo|prod)", cfg.AFIP.Environment)
	}

	issuers, err := loadIssuers(cfg.AFIP.IssuersFile, cfg.AFIP.CertDir)
	if err != nil {
		return nil, err
	}
	cfg.AFIP.Issuers = issuers

	return cfg, nil
}

// loadIssuers lee la tabla de emisores de un archivo (yaml/json/toml, clave "issuers").
// Sin archivo se usan los emisores por defecto con sus certificados en certDir.
func loadIssuers(path, certDir string) ([]IssuerConfig, error) {
	if path == "" {
		return DefaultIssuers(certDir), nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("leer archivo de emisores %s: %w", path, err)
	}
	var issuers []IssuerConfig
	if err := v.UnmarshalKey("issuers", &issuers); err != nil {
		return nil, fmt.Errorf("decodificar emisores: %w", err)
	}
	if len(issuers) == 0 {
		return nil, fmt.Errorf("archivo de emisores %s sin entradas", path)
	}
	base := filepath.Dir(path)
	for i := range issuers {
		issuers[i].CertPath = resolvePath(base, issuers[i].CertPath)
		issuers[i].KeyPath = resolvePath(base, issuers[i].KeyPath)
	}
	return issuers, nil
}

// DefaultIssuers devuelve los dos emisores monotributistas por defecto.
func DefaultIssuers(certDir string) []IssuerConfig {
	const domicilio = "Rodriguez Peña 1789 - Mar Del Plata Sur, Buenos Aires"
	return []IssuerConfig{
		{
			CUIT:              "27239676931",
			RazonSocial:       "DEVRIES MARIA PAULA",
			Domicilio:         domicilio,
			CondicionIVA:      "Responsable Monotributo",
			IngresosBrutos:    "27239676931",
			InicioActividades: "01/01/2021",
			CertPath:          filepath.Join(certDir, "facturacion27239676931.crt"),
			KeyPath:           filepath.Join(certDir, "cuit_27239676931.key"),
		},
		{
			CUIT:              "27461124149",
			RazonSocial:       "DEVRIES MARIA PAULA",
			Domicilio:         domicilio,
			CondicionIVA:      "Responsable Monotributo",
			IngresosBrutos:    "27461124149",
			InicioActividades: "01/01/2021",
			CertPath:          filepath.Join(certDir, "facturacion27461124149.crt"),
			KeyPath:           filepath.Join(certDir, "cuit_27461124149.key"),
		},
	}
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getDuration acepta "90s", "10m", "2h" o un entero en segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
