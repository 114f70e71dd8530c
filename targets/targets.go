package targets

import (
	_ "embed"
	"errors"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed targets.yaml
var rawTargets []byte

var targets Targets

var ErrUnknownChip = errors.New("targets: unknown chip")

// Targets is the built-in table of flash geometries for chips this toolkit
// knows out of the box. A manifest naming one of these chips inherits its
// geometry and only has to describe the algorithm binding.
type Targets []ChipInfo

type ChipInfo struct {
	Chip    string   `yaml:"chip"`
	Aliases []string `yaml:"aliases"`

	FlashAddress uint32 `yaml:"flashAddress"`
	FlashSize    uint32 `yaml:"flashSize"`
	PageSize     uint32 `yaml:"pageSize"`
	EmptyValue   byte   `yaml:"emptyValue"`

	RAMStartAddress uint32 `yaml:"ramStartAddress"`
	RAMEndAddress   uint32 `yaml:"ramEndAddress"`

	Sectors []SectorRegion `yaml:"sectors"`
}

// SectorRegion is one run of equally sized erase sectors, relative to the
// flash base.
type SectorRegion struct {
	Size    uint32 `yaml:"size"`
	Address uint32 `yaml:"address"`
}

func All() Targets {
	return targets
}

// FindByChip looks a chip up by canonical name or alias, case-insensitively.
func FindByChip(name string) (ChipInfo, error) {
	name = strings.ToLower(name)
	for _, t := range targets {
		if strings.ToLower(t.Chip) == name || slices.ContainsFunc(t.Aliases, func(a string) bool {
			return strings.ToLower(a) == name
		}) {
			return t, nil
		}
	}
	return ChipInfo{}, ErrUnknownChip
}

func init() {
	var t struct {
		Elements []ChipInfo `yaml:"targets"`
	}
	if err := yaml.Unmarshal(rawTargets, &t); err != nil {
		panic(err)
	}

	targets = t.Elements
}
