// Package collect retrieves running configurations from switches over SSH
// and returns them as configuration files ready for conversion.
package collect

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"

	"github.com/newtron-network/mistconv/pkg/pipeline"
	"github.com/newtron-network/mistconv/pkg/util"
)

// Commands run for each dialect, in order. Their outputs are concatenated
// into one file.
var (
	IOSCommands   = []string{"show vlan brief", "show running-config"}
	JunosCommands = []string{"show configuration | display set | no-more"}
)

// DefaultTimeout bounds dialing and each command.
const DefaultTimeout = 30 * time.Second

// Device is a switch to collect from.
type Device struct {
	Name     string          `yaml:"name" json:"name"`
	Host     string          `yaml:"host" json:"host"`
	Port     int             `yaml:"port,omitempty" json:"port,omitempty"`
	User     string          `yaml:"user,omitempty" json:"user,omitempty"`
	Password string          `yaml:"password,omitempty" json:"-"`
	Dialect  pipeline.Format `yaml:"dialect" json:"dialect"`
}

// Addr returns host:port, defaulting to port 22.
func (d Device) Addr() string {
	port := d.Port
	if port == 0 {
		port = 22
	}
	return net.JoinHostPort(d.Host, strconv.Itoa(port))
}

// FileName is the name given to the collected configuration.
func (d Device) FileName() string {
	name := d.Name
	if name == "" {
		name = d.Host
	}
	return name + ".txt"
}

// Commands returns the commands to run on the device.
func (d Device) Commands() ([]string, error) {
	switch d.Dialect {
	case pipeline.FormatIOS:
		return IOSCommands, nil
	case pipeline.FormatJunos:
		return JunosCommands, nil
	}
	return nil, fmt.Errorf("device %s: %w", d.Host, util.ErrFormatUnknown)
}

// Session runs commands on a connected device.
type Session interface {
	Run(ctx context.Context, cmd string) (string, error)
	Close() error
}

// Dialer opens a session to a device.
type Dialer func(ctx context.Context, d Device) (Session, error)

// Collector fetches configurations from devices.
type Collector struct {
	dial        Dialer
	log         *logrus.Logger
	concurrency int
}

// Option configures a Collector.
type Option func(*Collector)

// WithDialer replaces the SSH dialer.
func WithDialer(d Dialer) Option {
	return func(c *Collector) { c.dial = d }
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Collector) { c.log = l }
}

// WithConcurrency bounds the number of devices collected at once.
func WithConcurrency(n int) Option {
	return func(c *Collector) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// New returns a Collector using SSH password authentication.
func New(opts ...Option) *Collector {
	c := &Collector{dial: DialSSH, log: util.Logger, concurrency: 4}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Collect retrieves the configuration of one device.
func (c *Collector) Collect(ctx context.Context, d Device) (*pipeline.ConfigFile, error) {
	cmds, err := d.Commands()
	if err != nil {
		return nil, err
	}
	log := util.FileEntry(c.log, d.FileName()).WithField("host", d.Host)

	sess, err := c.dial(ctx, d)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	var b strings.Builder
	for _, cmd := range cmds {
		log.Debugf("Running %q", cmd)
		out, err := sess.Run(ctx, cmd)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: %w", d.Host, cmd, err)
		}
		b.WriteString(out)
		if !strings.HasSuffix(out, "\n") {
			b.WriteString("\n")
		}
	}

	f := pipeline.NewConfigFile(d.FileName(), b.String())
	log.Infof("Collected %d lines", len(f.Lines))
	return f, nil
}

// CollectAll collects from every device. Files are returned in device
// order; devices that fail are logged and omitted, and their errors
// returned alongside.
func (c *Collector) CollectAll(ctx context.Context, devices []Device) ([]*pipeline.ConfigFile, []error) {
	results := make([]*pipeline.ConfigFile, len(devices))
	errs := make([]error, len(devices))

	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup
	for i, d := range devices {
		wg.Add(1)
		go func(i int, d Device) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			results[i], errs[i] = c.Collect(ctx, d)
		}(i, d)
	}
	wg.Wait()

	var files []*pipeline.ConfigFile
	var failed []error
	for i, f := range results {
		if errs[i] != nil {
			util.FileEntry(c.log, devices[i].FileName()).Errorf("Collection failed: %v", errs[i])
			failed = append(failed, errs[i])
			continue
		}
		files = append(files, f)
	}
	return files, failed
}

// sshSession runs each command in its own SSH session.
type sshSession struct {
	client *ssh.Client
}

// DialSSH connects with password authentication. Host keys are not
// verified.
func DialSSH(ctx context.Context, d Device) (Session, error) {
	config := &ssh.ClientConfig{
		User: d.User,
		Auth: []ssh.AuthMethod{
			ssh.Password(d.Password),
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = d.Password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         DefaultTimeout,
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", d.Addr())
	if err != nil {
		return nil, fmt.Errorf("SSH dial %s: %w", d.Addr(), err)
	}
	client, err := handshake(ctx, conn, d.Addr(), config, DefaultTimeout)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SSH handshake %s: %w", d.Addr(), err)
	}
	return &sshSession{client: client}, nil
}

// handshake runs the SSH handshake on conn. It fails once timeout elapses
// or ctx is done, whichever comes first.
func handshake(ctx context.Context, conn net.Conn, addr string, config *ssh.ClientConfig, timeout time.Duration) (*ssh.Client, error) {
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	sc, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if !stop() {
		if err == nil {
			sc.Close()
		}
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		sc.Close()
		return nil, err
	}
	return ssh.NewClient(sc, chans, reqs), nil
}

// Run executes cmd and returns its combined output. The session is closed
// when ctx is done.
func (s *sshSession) Run(ctx context.Context, cmd string) (string, error) {
	session, err := s.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("SSH session: %w", err)
	}
	defer session.Close()

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, func() { session.Close() })
	defer stop()

	output, err := session.CombinedOutput(cmd)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return string(output), err
}

func (s *sshSession) Close() error {
	return s.client.Close()
}
