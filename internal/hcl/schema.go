package hcl

import "github.com/hashicorp/hcl/v2"

// bridgeBlock is the HCL shape of the single `bridge` settings block.
type bridgeBlock struct {
	Mode       string `hcl:"mode,optional"`
	Listen     string `hcl:"listen,optional"`
	SessionCap int    `hcl:"session_cap,optional"`
}

// componentBlock is the HCL shape of one `component` declaration. dev_url is
// used in development mode, asset_dir in release mode; a component may carry
// both so the same file works in either mode.
type componentBlock struct {
	Name     string `hcl:"name,label"`
	DevURL   string `hcl:"dev_url,optional"`
	AssetDir string `hcl:"asset_dir,optional"`
}

// fileRoot decodes all recognized top-level blocks from any file.
type fileRoot struct {
	Bridge     *bridgeBlock      `hcl:"bridge,block"`
	Components []*componentBlock `hcl:"component,block"`
	Remain     hcl.Body          `hcl:",remain"`
}
