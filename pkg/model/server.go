package model

// SecretPlaceholder replaces shared secrets, which are never carried over
// from device configurations.
const SecretPlaceholder = "to_be_replaced"

// Server defaults
const (
	DefaultRadiusAuthPort = 1812
	DefaultRadiusAcctPort = 1813
	DefaultRadiusTimeout  = 5
	DefaultCoAPort        = 3799
	DefaultTacacsPort     = 49
	DefaultTacacsTimeout  = 10
	DefaultSyslogPort     = 514
	DefaultSyslogProtocol = "udp"
)

// RadiusServer is a RADIUS authentication or accounting server. Records are
// comparable and deduplicated by value.
type RadiusServer struct {
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Secret  string `json:"secret"`
	Timeout int    `json:"timeout"`
}

// NewRadiusServer returns a server record with the secret placeholder. A
// non-positive timeout selects the default.
func NewRadiusServer(host string, port, timeout int) RadiusServer {
	if timeout <= 0 {
		timeout = DefaultRadiusTimeout
	}
	return RadiusServer{Host: host, Port: port, Secret: SecretPlaceholder, Timeout: timeout}
}

// TacacsServer is a TACACS+ authentication or accounting server.
type TacacsServer struct {
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Secret  string `json:"secret"`
	Timeout int    `json:"timeout"`
}

// NewTacacsServer returns a server record with the secret placeholder and the
// default timeout. A non-positive port selects port 49.
func NewTacacsServer(host string, port int) TacacsServer {
	if port <= 0 {
		port = DefaultTacacsPort
	}
	return TacacsServer{Host: host, Port: port, Secret: SecretPlaceholder, Timeout: DefaultTacacsTimeout}
}

// SyslogServer is a remote syslog destination.
type SyslogServer struct {
	Host     string `json:"host"`
	Protocol string `json:"protocol"`
	Port     int    `json:"port"`
}

// NewSyslogServer fills in udp/514 for missing values.
func NewSyslogServer(host, protocol string, port int) SyslogServer {
	if protocol == "" {
		protocol = DefaultSyslogProtocol
	}
	if port <= 0 {
		port = DefaultSyslogPort
	}
	return SyslogServer{Host: host, Protocol: protocol, Port: port}
}

// RadiusCoA is the RADIUS change-of-authorization setting.
type RadiusCoA struct {
	Enabled bool
	Port    int
}
