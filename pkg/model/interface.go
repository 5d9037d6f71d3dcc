package model

// Configuration dialect tags recorded on parsed interfaces.
const (
	ConfigTypeIOS   = "ios"
	ConfigTypeJunos = "junos"
)

// ParsedInterface is one interface read from a configuration file. Only
// ProfileName changes after creation, once names have been generated.
type ParsedInterface struct {
	File          string   `json:"file"`
	Hostname      string   `json:"hostname"`
	InterfaceName string   `json:"interface_name"`
	ProfileID     string   `json:"profile_id"`
	ProfileName   string   `json:"profile_name"`
	ConfigType    string   `json:"config_type"`
	ConfigBlocks  []string `json:"config_blocks"`
	Description   string   `json:"description"`
}

// ParsedProfile is a distinct port configuration shared by one or more
// interfaces.
type ParsedProfile struct {
	UUID            string               `json:"uuid"`
	GeneratedName   string               `json:"generated_name"`
	Descriptions    []string             `json:"descriptions"`
	InterfaceNames  []string             `json:"interface_names"`
	InterfaceRanges []string             `json:"interface_ranges"`
	Config          ProfileConfiguration `json:"config"`
	Key             ProfileKey           `json:"-"`
}
