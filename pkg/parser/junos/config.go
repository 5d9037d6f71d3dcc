package junos

import (
	"strconv"

	"github.com/newtron-network/mistconv/pkg/model"
)

// radiusEntry gathers the "access radius-server <ip> ..." statements of one
// server.
type radiusEntry struct {
	host               string
	authPort, acctPort int
	coaPort, timeout   int
}

// hostPort gathers "<host> port <n>" style statements of one server.
type hostPort struct {
	host     string
	port     int
	protocol string
}

// ReadConfig reads the configuration of a file into the model. Statements
// are first grouped by family because one port's attributes arrive from
// several families in any order.
func (p *Parser) ReadConfig(file string, lines []string) error {
	log := p.data.Log(file)
	stmts := p.statements(file, lines)
	vlans := buildVlanIndex(stmts)

	var (
		hostname string
		radius   []*radiusEntry
		tacAuth  []*hostPort
		tacAcct  []*hostPort
		syslog   []*hostPort
		ports    = newPortTable()
	)

	for _, s := range stmts {
		switch {
		case s.has("system", "host-name"):
			hostname = s.arg(2)
		case s.has("system", "name-server"):
			p.data.AddDNSServer(file, s.arg(2))
		case s.has("system", "domain-search"), s.has("system", "domain-name"):
			p.data.AddDNSSuffix(file, s.arg(2))
		case s.has("system", "ntp", "server"):
			p.data.AddNTPServer(file, s.arg(3))
		case s.has("system", "login", "message"):
			p.data.SetBanner(file, s.arg(3))
		case s.has("system", "syslog", "host"):
			readHostPort(&syslog, s.words[3:])
		case s.has("system", "tacplus-server"):
			readHostPort(&tacAuth, s.words[2:])
		case s.has("system", "accounting", "destination", "tacplus", "server"):
			readHostPort(&tacAcct, s.words[5:])
		case s.has("access", "radius-server"):
			readRadius(&radius, s.words[2:])
		case s.has("vlans") && s.arg(2) == "forwarding-options" && s.arg(3) == "dhcp-security":
			name := s.arg(1)
			if id, ok := vlans.ids[sanitize(name)]; ok {
				p.data.AddDHCPSnoopingVlan(file, id)
			} else {
				log.Warnf("DHCP snooping enabled on unknown VLAN %s, ignored", name)
			}
		case s.has("interfaces", "interface-range"):
			ports.addRange(p, file, s)
		case s.has("interfaces"):
			ports.addInterface(s)
		case s.has("protocols", "dot1x", "authenticator", "interface"):
			ports.addFamily(familyDot1x, s, 4)
		case s.has("class-of-service", "interfaces"):
			ports.addFamily(familyQoS, s, 2)
		case s.has("poe", "interface"):
			ports.addFamily(familyPoE, s, 2)
		case s.has("protocols", "rstp", "interface"):
			ports.addFamily(familyRSTP, s, 3)
		case s.has("switch-options", "voip", "interface"):
			ports.addFamily(familyVoIP, s, 3)
		case s.has("switch-options", "interface"):
			ports.addFamily(familySwitchOptions, s, 2)
		}
	}

	for _, r := range radius {
		if r.authPort > 0 {
			p.data.AddRadiusAuthServer(file, r.host, r.authPort, r.timeout)
		}
		if r.acctPort > 0 {
			p.data.AddRadiusAcctServer(file, r.host, r.acctPort, r.timeout)
		}
		if r.coaPort > 0 {
			p.data.SetRadiusCoA(file, r.coaPort)
		}
	}
	for _, t := range tacAuth {
		p.data.AddTacacsAuthServer(file, t.host, t.port)
	}
	for _, t := range tacAcct {
		p.data.AddTacacsAcctServer(file, t.host, t.port)
	}
	for _, s := range syslog {
		p.data.AddSyslogServer(file, s.host, s.protocol, s.port)
	}

	if hostname == "" {
		hostname = defaultHostname(file)
		log.Warnf("No hostname found, using %s", hostname)
	}

	ifaces := p.buildInterfaces(file, ports, vlans)
	for _, iface := range ifaces {
		iface.Hostname = hostname
		p.data.AddInterface(iface)
	}
	log.Infof("%d interface(s) read", len(ifaces))
	return nil
}

// readRadius handles "<ip> port|accounting-port|dynamic-request-port|timeout <n>".
func readRadius(entries *[]*radiusEntry, args []string) {
	if len(args) == 0 {
		return
	}
	var e *radiusEntry
	for _, cur := range *entries {
		if cur.host == args[0] {
			e = cur
		}
	}
	if e == nil {
		e = &radiusEntry{host: args[0], authPort: model.DefaultRadiusAuthPort}
		*entries = append(*entries, e)
	}
	if len(args) < 3 {
		return
	}
	n, err := strconv.Atoi(args[2])
	if err != nil {
		return
	}
	switch args[1] {
	case "port":
		e.authPort = n
	case "accounting-port":
		e.acctPort = n
	case "dynamic-request-port":
		e.coaPort = n
	case "timeout":
		e.timeout = n
	}
}

// readHostPort handles "<host> [port <n>] [transport tcp|udp]".
func readHostPort(entries *[]*hostPort, args []string) {
	if len(args) == 0 {
		return
	}
	var e *hostPort
	for _, cur := range *entries {
		if cur.host == args[0] {
			e = cur
		}
	}
	if e == nil {
		e = &hostPort{host: args[0]}
		*entries = append(*entries, e)
	}
	if len(args) < 3 {
		return
	}
	switch args[1] {
	case "port":
		if n, err := strconv.Atoi(args[2]); err == nil {
			e.port = n
		}
	case "transport":
		if args[2] == "tcp" || args[2] == "udp" {
			e.protocol = args[2]
		}
	}
}
