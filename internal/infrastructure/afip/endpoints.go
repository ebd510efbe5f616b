package afip

// URLs oficiales de los web services por entorno.
const (
	EnvHomologacion = "homo"
	EnvProduccion   = "prod"

	wsaaURLHomo = "https://wsaahomo.afip.gov.ar/ws/services/LoginCms"
	wsaaURLProd = "https://wsaa.afip.gov.ar/ws/services/LoginCms"
	wsfeURLHomo = "https://wswhomo.afip.gov.ar/wsfev1/service.asmx"
	wsfeURLProd = "https://servicios1.afip.gov.ar/wsfev1/service.asmx"
)

// Endpoints resuelve las URLs de WSAA y WSFE de un mismo entorno; los overrides no vacíos tienen prioridad.
func Endpoints(env, wsaaOverride, wsfeOverride string) (wsaa, wsfe string) {
	wsaa, wsfe = wsaaURLHomo, wsfeURLHomo
	if env == EnvProduccion {
		wsaa, wsfe = wsaaURLProd, wsfeURLProd
	}
	if wsaaOverride != "" {
		wsaa = wsaaOverride
	}
	if wsfeOverride != "" {
		wsfe = wsfeOverride
	}
	return wsaa, wsfe
}
