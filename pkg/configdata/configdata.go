// Package configdata accumulates the canonical network model read from every
// configuration file of a conversion and renders it as a Mist template.
//
// A ConfigData is owned by a single conversion and is not safe for
// concurrent use. Files must be fed to it in a stable order: profile
// creation order and first-seen VLAN names decide the generated names.
package configdata

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/util"
)

// ConfigData is the canonical model shared by both dialect parsers.
type ConfigData struct {
	log          *logrus.Logger
	newUUID      func() string
	templateName string

	vlans        map[string]*model.VlanEntry
	vlanOrder    []string
	dhcpSnooping []string

	ntpServers []string
	dnsServers []string
	dnsSuffix  []string
	banner     string

	syslogServers []model.SyslogServer
	radiusAuth    []model.RadiusServer
	radiusAcct    []model.RadiusServer
	radiusCoA     model.RadiusCoA
	tacacsAuth    []model.TacacsServer
	tacacsAcct    []model.TacacsServer

	profiles     []*model.ParsedProfile
	profileIndex map[model.ProfileKey]*model.ParsedProfile
	interfaces   []*model.ParsedInterface
	lags         map[string]*lagTable
	named        bool
}

// Option configures a ConfigData.
type Option func(*ConfigData)

// WithLogger sends model events to l instead of the global logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *ConfigData) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUUIDGenerator replaces the random v4 uuid source used for profile ids.
func WithUUIDGenerator(fn func() string) Option {
	return func(c *ConfigData) {
		if fn != nil {
			c.newUUID = fn
		}
	}
}

// WithTemplateName sets the name of the generated template.
func WithTemplateName(name string) Option {
	return func(c *ConfigData) {
		if name != "" {
			c.templateName = name
		}
	}
}

// New returns an empty model.
func New(opts ...Option) *ConfigData {
	c := &ConfigData{
		log:          util.Logger,
		newUUID:      uuid.NewString,
		templateName: model.DefaultTemplateName,
		vlans:        make(map[string]*model.VlanEntry),
		profileIndex: make(map[model.ProfileKey]*model.ParsedProfile),
		lags:         make(map[string]*lagTable),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Logger returns the logger model events are written to.
func (c *ConfigData) Logger() *logrus.Logger {
	return c.log
}

// Log returns an entry carrying the file context.
func (c *ConfigData) Log(file string) *logrus.Entry {
	return util.FileEntry(c.log, file)
}

// TemplateName returns the configured template name.
func (c *ConfigData) TemplateName() string {
	return c.templateName
}

// appendUnique appends v unless an equal value is already present. It
// reports whether v was added.
func appendUnique[T comparable](list []T, v T) ([]T, bool) {
	for _, x := range list {
		if x == v {
			return list, false
		}
	}
	return append(list, v), true
}

// AddNTPServer records an NTP server.
func (c *ConfigData) AddNTPServer(file, server string) {
	var added bool
	if c.ntpServers, added = appendUnique(c.ntpServers, server); added {
		c.Log(file).Infof("New NTP server added: %s", server)
	}
}

// AddDNSServer records a DNS server.
func (c *ConfigData) AddDNSServer(file, server string) {
	var added bool
	if c.dnsServers, added = appendUnique(c.dnsServers, server); added {
		c.Log(file).Infof("New DNS server added: %s", server)
	}
}

// AddDNSSuffix records a DNS search domain.
func (c *ConfigData) AddDNSSuffix(file, suffix string) {
	var added bool
	if c.dnsSuffix, added = appendUnique(c.dnsSuffix, suffix); added {
		c.Log(file).Infof("New DNS suffix added: %s", suffix)
	}
}

// SetBanner sets the login banner. Lines are joined with newlines; carriage
// returns are dropped. The last banner read wins.
func (c *ConfigData) SetBanner(file, banner string) {
	if banner == "" {
		return
	}
	if c.banner != "" && c.banner != banner {
		c.Log(file).Warn("Banner already defined by another file, replacing it")
	}
	c.banner = banner
}

// AddInterface records a parsed interface. Interfaces are never
// deduplicated.
func (c *ConfigData) AddInterface(iface *model.ParsedInterface) {
	c.interfaces = append(c.interfaces, iface)
	c.named = false
}

// Interfaces returns the recorded interfaces in read order.
func (c *ConfigData) Interfaces() []*model.ParsedInterface {
	return c.interfaces
}
