package ios

import (
	"strconv"
	"strings"

	"github.com/newtron-network/mistconv/pkg/model"
	"github.com/newtron-network/mistconv/pkg/util"
)

type blockKind int

const (
	blockNone blockKind = iota
	blockRadius
	blockTacacs
	blockCoA
	blockInterface
	blockBanner
)

// block is a multi-line command being accumulated.
type block struct {
	kind  blockKind
	name  string
	delim string // banner terminator
	lines []string
}

// fileState is the per-file parsing state.
type fileState struct {
	file       string
	hostname   string
	cur        block
	interfaces []*model.ParsedInterface
}

// ReadConfig reads the running configuration of a file into the model.
func (p *Parser) ReadConfig(file string, lines []string) error {
	st := &fileState{file: file}

	for _, raw := range configSection(lines) {
		line := strings.TrimRight(raw, " \t")

		if st.cur.kind == blockBanner {
			if i := strings.Index(line, st.cur.delim); i >= 0 {
				if text := line[:i]; text != "" {
					st.cur.lines = append(st.cur.lines, text)
				}
				p.flush(st)
			} else {
				st.cur.lines = append(st.cur.lines, line)
			}
			continue
		}

		if st.cur.kind != blockNone {
			if strings.HasPrefix(line, " ") {
				st.cur.lines = append(st.cur.lines, line)
				continue
			}
			p.flush(st)
		}

		p.topLevel(st, line)
	}
	p.flush(st)

	if st.hostname == "" {
		st.hostname = defaultHostname(file)
		p.data.Log(file).Warnf("No hostname found, using %s", st.hostname)
	}
	for _, iface := range st.interfaces {
		iface.Hostname = st.hostname
		p.data.AddInterface(iface)
	}
	p.data.Log(file).Infof("%d interface(s) read", len(st.interfaces))
	return nil
}

// topLevel handles a line that is not part of a block: it either opens a
// block or is a single-line command.
func (p *Parser) topLevel(st *fileState, line string) {
	file := st.file
	switch {
	case strings.HasPrefix(line, "hostname "):
		st.hostname = strings.TrimSpace(strings.TrimPrefix(line, "hostname "))

	case strings.HasPrefix(line, "interface "):
		st.cur = block{kind: blockInterface, name: strings.TrimSpace(strings.TrimPrefix(line, "interface "))}

	case strings.HasPrefix(line, "radius server "):
		st.cur = block{kind: blockRadius, name: strings.TrimSpace(strings.TrimPrefix(line, "radius server "))}

	case strings.HasPrefix(line, "tacacs server "):
		st.cur = block{kind: blockTacacs, name: strings.TrimSpace(strings.TrimPrefix(line, "tacacs server "))}

	case strings.HasPrefix(line, "aaa server radius dynamic-author"):
		st.cur = block{kind: blockCoA}

	case strings.HasPrefix(line, "banner motd"):
		p.openBanner(st, strings.TrimSpace(strings.TrimPrefix(line, "banner motd")))

	case strings.HasPrefix(line, "ip name-server "):
		for _, s := range skipVrf(strings.Fields(strings.TrimPrefix(line, "ip name-server "))) {
			p.data.AddDNSServer(file, s)
		}

	case strings.HasPrefix(line, "ip domain name "), strings.HasPrefix(line, "ip domain-name "):
		fields := strings.Fields(line)
		p.data.AddDNSSuffix(file, fields[len(fields)-1])

	case strings.HasPrefix(line, "ntp server "):
		if args := skipVrf(strings.Fields(strings.TrimPrefix(line, "ntp server "))); len(args) > 0 {
			p.data.AddNTPServer(file, args[0])
		}

	case strings.HasPrefix(line, "logging host "):
		p.readLoggingHost(file, strings.Fields(strings.TrimPrefix(line, "logging host ")))

	case strings.HasPrefix(line, "logging "):
		// legacy "logging <ip>"
		fields := strings.Fields(strings.TrimPrefix(line, "logging "))
		if len(fields) == 1 && util.IsValidIPv4(fields[0]) {
			p.data.AddSyslogServer(file, fields[0], "", 0)
		}

	case strings.HasPrefix(line, "ip dhcp snooping vlan "):
		ids, err := util.ExpandVLANList(strings.TrimSpace(strings.TrimPrefix(line, "ip dhcp snooping vlan ")))
		if err != nil {
			p.data.Log(file).WithError(err).Warnf("Unable to parse DHCP snooping VLANs: %s", line)
			return
		}
		for _, id := range ids {
			p.data.AddDHCPSnoopingVlan(file, id)
		}

	case strings.HasPrefix(line, "radius-server host "):
		p.readLegacyRadius(file, strings.Fields(strings.TrimPrefix(line, "radius-server host ")))

	case strings.HasPrefix(line, "tacacs-server host "):
		fields := strings.Fields(strings.TrimPrefix(line, "tacacs-server host "))
		if len(fields) == 0 {
			return
		}
		port := intAfter(fields, "port")
		p.data.AddTacacsAuthServer(file, fields[0], port)
		p.data.AddTacacsAcctServer(file, fields[0], port)
	}
}

// openBanner starts a banner. The first character (or "^C") after the
// keyword is the delimiter; text may follow it on the same line, and a
// second delimiter on that line closes the banner at once.
func (p *Parser) openBanner(st *fileState, rest string) {
	delim := "^C"
	if !strings.HasPrefix(rest, delim) {
		if rest == "" {
			return
		}
		delim = rest[:1]
	}
	st.cur = block{kind: blockBanner, delim: delim}
	rest = rest[len(delim):]
	if i := strings.Index(rest, delim); i >= 0 {
		if text := rest[:i]; text != "" {
			st.cur.lines = append(st.cur.lines, text)
		}
		p.flush(st)
		return
	}
	if rest != "" {
		st.cur.lines = append(st.cur.lines, rest)
	}
}

// flush dispatches the accumulated block and resets the state.
func (p *Parser) flush(st *fileState) {
	b := st.cur
	st.cur = block{}
	switch b.kind {
	case blockRadius:
		p.readRadius(st.file, b.lines)
	case blockTacacs:
		p.readTacacs(st.file, b.lines)
	case blockCoA:
		p.readCoA(st.file, b.lines)
	case blockInterface:
		if iface := p.readInterface(st.file, b.name, b.lines); iface != nil {
			st.interfaces = append(st.interfaces, iface)
		}
	case blockBanner:
		p.data.SetBanner(st.file, strings.ReplaceAll(strings.Join(b.lines, "\n"), "\r", ""))
	}
}

// skipVrf drops a leading "vrf <name>" qualifier.
func skipVrf(args []string) []string {
	if len(args) >= 2 && args[0] == "vrf" {
		return args[2:]
	}
	return args
}

// intAfter returns the integer following keyword in fields, or 0.
func intAfter(fields []string, keyword string) int {
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] == keyword {
			n, err := strconv.Atoi(fields[i+1])
			if err == nil {
				return n
			}
		}
	}
	return 0
}

// stringAfter returns the token following keyword in fields, or "".
func stringAfter(fields []string, keyword string) string {
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] == keyword {
			return fields[i+1]
		}
	}
	return ""
}
