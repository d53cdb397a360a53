package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclConfigFile is the optional file named by CONFIG_FILE. Every attribute is
// optional; an absent one keeps the value it replaces.
type hclConfigFile struct {
	Maze      *hclMazeBlock      `hcl:"maze,block"`
	Animation *hclAnimationBlock `hcl:"animation,block"`
	Server    *hclServerBlock    `hcl:"server,block"`
}

type hclMazeBlock struct {
	Rows       *int   `hcl:"rows,optional"`
	Cols       *int   `hcl:"cols,optional"`
	Seed       *int64 `hcl:"seed,optional"`
	ExtraGates *int   `hcl:"extra_gates,optional"`
}

type hclAnimationBlock struct {
	MaxExponent *int `hcl:"max_exponent,optional"`
	TimeUnitMS  *int `hcl:"time_unit_ms,optional"`
	Speed       *int `hcl:"speed,optional"`
}

type hclServerBlock struct {
	HostIP   *string `hcl:"host_ip,optional"`
	RESTPort *int    `hcl:"rest_port,optional"`
	GinMode  *string `hcl:"gin_mode,optional"`
}

// loadFile applies the values found in an HCL config file on top of base.
// Secrets are read from the environment only.
func loadFile(filePath string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
	}

	var parsed hclConfigFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return base, fmt.Errorf("failed to decode HCL file %s: %w", filePath, diags)
	}

	c := base
	if m := parsed.Maze; m != nil {
		setInt(&c.MazeRows, m.Rows)
		setInt(&c.MazeCols, m.Cols)
		if m.Seed != nil {
			c.MazeSeed = *m.Seed
		}
		setInt(&c.DefaultExtraGates, m.ExtraGates)
	}
	if a := parsed.Animation; a != nil {
		setInt(&c.AnimationMaxExponent, a.MaxExponent)
		setInt(&c.AnimationTimeUnitMS, a.TimeUnitMS)
		setInt(&c.DefaultAnimationSpeed, a.Speed)
	}
	if s := parsed.Server; s != nil {
		if s.HostIP != nil {
			c.HostIP = *s.HostIP
		}
		setInt(&c.RESTPort, s.RESTPort)
		if s.GinMode != nil {
			c.GinMode = *s.GinMode
		}
	}
	return c, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
