package mockapi

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/syncflow/dashboard/internal/model"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the static dataset served by the mock backend.
type Fixtures struct {
	Employees []model.Employee `yaml:"employees"`
	Managers  []model.Manager  `yaml:"managers"`
	Hosts     []Host           `yaml:"hosts"`
	Traffic   Traffic          `yaml:"traffic"`
	SysInfo   model.SysInfo    `yaml:"sysinfo"`
}

// Host is one checkout IP with its ports and policies.
type Host struct {
	IP       string         `yaml:"ip"`
	Ports    []string       `yaml:"ports"`
	Policies []model.Policy `yaml:"policies"`
}

// Traffic parameterizes the generated network-log streams.
type Traffic struct {
	Severities []string `yaml:"severities"`
	Protocols  []string `yaml:"protocols"`
	Peers      []string `yaml:"peers"`
	Ports      []string `yaml:"ports"`
	// Batch is the number of entries appended to a stream per request.
	Batch int `yaml:"batch"`
	// History caps the entries kept per stream.
	History int `yaml:"history"`
}

// DefaultFixtures returns the embedded dataset.
func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

// ParseFixtures decodes a YAML dataset and fills in traffic defaults.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("mockapi: parse fixtures: %w", err)
	}
	seen := make(map[string]bool, len(fx.Hosts))
	for _, h := range fx.Hosts {
		if h.IP == "" {
			return nil, fmt.Errorf("mockapi: host without ip")
		}
		if seen[h.IP] {
			return nil, fmt.Errorf("mockapi: duplicate host %s", h.IP)
		}
		seen[h.IP] = true
	}
	t := &fx.Traffic
	if len(t.Severities) == 0 {
		t.Severities = []string{"LOW", "MEDIUM", "HIGH"}
	}
	if len(t.Protocols) == 0 {
		t.Protocols = []string{"TCP"}
	}
	if len(t.Peers) == 0 {
		t.Peers = []string{"192.0.2.1"}
	}
	if len(t.Ports) == 0 {
		t.Ports = []string{"443"}
	}
	if t.Batch <= 0 {
		t.Batch = 1
	}
	if t.History <= 0 {
		t.History = 200
	}
	return &fx, nil
}

// Host returns the host entry for ip.
func (fx *Fixtures) Host(ip string) (Host, bool) {
	for _, h := range fx.Hosts {
		if h.IP == ip {
			return h, true
		}
	}
	return Host{}, false
}

// IPs lists the host addresses in fixture order.
func (fx *Fixtures) IPs() []string {
	ips := make([]string, 0, len(fx.Hosts))
	for _, h := range fx.Hosts {
		ips = append(ips, h.IP)
	}
	return ips
}
