package config

import (
	"sort"

	"github.com/san-kum/doppler/internal/broadening"
)

var Presets = map[string]broadening.Params{
	"example": {
		EnergyMeV: 1.0, Beta: 0.05, DThetaDeg: 10, ResolutionConst: 0.03, DBeta: 0.001,
	},
	"stationary": {
		EnergyMeV: 1.0, Beta: 0.0, DThetaDeg: 10, ResolutionConst: 0.03, DBeta: 0.0,
	},
	"fast-beam": {
		EnergyMeV: 1.33, Beta: 0.3, DThetaDeg: 5, ResolutionConst: 0.03, DBeta: 0.01,
	},
	"wide-detector": {
		EnergyMeV: 0.662, Beta: 0.1, DThetaDeg: 25, ResolutionConst: 0.05, DBeta: 0.002,
	},
	"beta-spread": {
		EnergyMeV: 2.0, Beta: 0.08, DThetaDeg: 3, ResolutionConst: 0.025, DBeta: 0.02,
	},
}

func GetPreset(name string) (broadening.Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
