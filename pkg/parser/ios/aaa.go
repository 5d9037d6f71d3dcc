package ios

import (
	"strings"

	"github.com/newtron-network/mistconv/pkg/model"
)

// readRadius handles a "radius server <name>" block:
//
//	radius server ISE1
//	 address ipv4 10.1.1.1 auth-port 1812 acct-port 1813
//	 timeout 5
//
// An unset auth-port uses the RADIUS default. Accounting is only configured
// by an explicit acct-port; a port of 0 disables that role.
func (p *Parser) readRadius(file string, lines []string) {
	var host string
	authPort, acctPort := model.DefaultRadiusAuthPort, 0
	timeout := 0

	for _, line := range lines {
		fields := strings.Fields(line)
		switch {
		case len(fields) >= 3 && fields[0] == "address" && fields[1] == "ipv4":
			host = fields[2]
			if v, ok := lookupInt(fields, "auth-port"); ok {
				authPort = v
			}
			if v, ok := lookupInt(fields, "acct-port"); ok {
				acctPort = v
			}
		case len(fields) >= 2 && fields[0] == "timeout":
			timeout = intAfter(fields, "timeout")
		}
	}

	if host == "" {
		p.data.Log(file).Warn("RADIUS server without an IPv4 address, ignored")
		return
	}
	if authPort > 0 {
		p.data.AddRadiusAuthServer(file, host, authPort, timeout)
	}
	if acctPort > 0 {
		p.data.AddRadiusAcctServer(file, host, acctPort, timeout)
	}
}

// readLegacyRadius handles "radius-server host <ip> [auth-port N] [acct-port N] [timeout N]".
func (p *Parser) readLegacyRadius(file string, fields []string) {
	if len(fields) == 0 {
		return
	}
	authPort, acctPort := model.DefaultRadiusAuthPort, 0
	if v, ok := lookupInt(fields, "auth-port"); ok {
		authPort = v
	}
	if v, ok := lookupInt(fields, "acct-port"); ok {
		acctPort = v
	}
	timeout := intAfter(fields, "timeout")
	if authPort > 0 {
		p.data.AddRadiusAuthServer(file, fields[0], authPort, timeout)
	}
	if acctPort > 0 {
		p.data.AddRadiusAcctServer(file, fields[0], acctPort, timeout)
	}
}

// readTacacs handles a "tacacs server <name>" block. The server is used for
// both authentication and accounting.
func (p *Parser) readTacacs(file string, lines []string) {
	var host string
	port := 0
	for _, line := range lines {
		fields := strings.Fields(line)
		switch {
		case len(fields) >= 3 && fields[0] == "address" && fields[1] == "ipv4":
			host = fields[2]
			if v := intAfter(fields, "port"); v > 0 {
				port = v
			}
		case len(fields) >= 2 && fields[0] == "port":
			port = intAfter(fields, "port")
		}
	}
	if host == "" {
		p.data.Log(file).Warn("TACACS+ server without an IPv4 address, ignored")
		return
	}
	p.data.AddTacacsAuthServer(file, host, port)
	p.data.AddTacacsAcctServer(file, host, port)
}

// readCoA handles "aaa server radius dynamic-author". CoA is enabled when at
// least one client is configured.
func (p *Parser) readCoA(file string, lines []string) {
	clients := 0
	port := model.DefaultCoAPort
	for _, line := range lines {
		fields := strings.Fields(line)
		switch {
		case len(fields) >= 2 && fields[0] == "client":
			clients++
		case len(fields) >= 2 && fields[0] == "port":
			if v := intAfter(fields, "port"); v > 0 {
				port = v
			}
		}
	}
	if clients > 0 {
		p.data.SetRadiusCoA(file, port)
	}
}

// readLoggingHost handles "logging host <ip> [transport tcp|udp [port N]]".
func (p *Parser) readLoggingHost(file string, fields []string) {
	if len(fields) == 0 {
		return
	}
	if fields[0] == "ipv6" {
		return
	}
	protocol := stringAfter(fields, "transport")
	if protocol != "" && protocol != "tcp" && protocol != "udp" {
		p.data.Log(file).Warnf("Unsupported syslog transport %s for %s, using udp", protocol, fields[0])
		protocol = ""
	}
	p.data.AddSyslogServer(file, fields[0], protocol, intAfter(fields, "port"))
}

func lookupInt(fields []string, keyword string) (int, bool) {
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] == keyword {
			n := intAfter(fields[i:], keyword)
			return n, true
		}
	}
	return 0, false
}
