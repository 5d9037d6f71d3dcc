package configdata

import "github.com/newtron-network/mistconv/pkg/model"

// AddSyslogServer records a remote syslog destination. Empty protocol and
// non-positive port select udp/514.
func (c *ConfigData) AddSyslogServer(file, host, protocol string, port int) {
	s := model.NewSyslogServer(host, protocol, port)
	var added bool
	if c.syslogServers, added = appendUnique(c.syslogServers, s); added {
		c.Log(file).Infof("New syslog server added: %s:%d/%s", s.Host, s.Port, s.Protocol)
	}
}

// AddRadiusAuthServer records a RADIUS authentication server.
func (c *ConfigData) AddRadiusAuthServer(file, host string, port, timeout int) {
	if port <= 0 {
		port = model.DefaultRadiusAuthPort
	}
	s := model.NewRadiusServer(host, port, timeout)
	var added bool
	if c.radiusAuth, added = appendUnique(c.radiusAuth, s); added {
		c.Log(file).Infof("New RADIUS authentication server added: %s:%d", host, port)
	}
}

// AddRadiusAcctServer records a RADIUS accounting server.
func (c *ConfigData) AddRadiusAcctServer(file, host string, port, timeout int) {
	if port <= 0 {
		port = model.DefaultRadiusAcctPort
	}
	s := model.NewRadiusServer(host, port, timeout)
	var added bool
	if c.radiusAcct, added = appendUnique(c.radiusAcct, s); added {
		c.Log(file).Infof("New RADIUS accounting server added: %s:%d", host, port)
	}
}

// SetRadiusCoA enables change of authorization on port. Non-positive ports
// are ignored; the last call wins.
func (c *ConfigData) SetRadiusCoA(file string, port int) {
	if port <= 0 {
		return
	}
	coa := model.RadiusCoA{Enabled: true, Port: port}
	if coa != c.radiusCoA {
		c.Log(file).Infof("RADIUS CoA enabled on port %d", port)
	}
	c.radiusCoA = coa
}

// AddTacacsAuthServer records a TACACS+ authentication server.
func (c *ConfigData) AddTacacsAuthServer(file, host string, port int) {
	s := model.NewTacacsServer(host, port)
	var added bool
	if c.tacacsAuth, added = appendUnique(c.tacacsAuth, s); added {
		c.Log(file).Infof("New TACACS+ authentication server added: %s:%d", s.Host, s.Port)
	}
}

// AddTacacsAcctServer records a TACACS+ accounting server.
func (c *ConfigData) AddTacacsAcctServer(file, host string, port int) {
	s := model.NewTacacsServer(host, port)
	var added bool
	if c.tacacsAcct, added = appendUnique(c.tacacsAcct, s); added {
		c.Log(file).Infof("New TACACS+ accounting server added: %s:%d", s.Host, s.Port)
	}
}

// RadiusAuthServers returns the RADIUS authentication servers in insertion order.
func (c *ConfigData) RadiusAuthServers() []model.RadiusServer { return c.radiusAuth }

// RadiusAcctServers returns the RADIUS accounting servers in insertion order.
func (c *ConfigData) RadiusAcctServers() []model.RadiusServer { return c.radiusAcct }

// TacacsAuthServers returns the TACACS+ authentication servers.
func (c *ConfigData) TacacsAuthServers() []model.TacacsServer { return c.tacacsAuth }

// TacacsAcctServers returns the TACACS+ accounting servers.
func (c *ConfigData) TacacsAcctServers() []model.TacacsServer { return c.tacacsAcct }

// SyslogServers returns the syslog servers.
func (c *ConfigData) SyslogServers() []model.SyslogServer { return c.syslogServers }

// RadiusCoA returns the change-of-authorization setting.
func (c *ConfigData) RadiusCoA() model.RadiusCoA { return c.radiusCoA }
