package config

import "sort"

var Presets = map[string]*Config{
	"room": {
		Temperature: 300, Population: 80, SizeScale: 1.0,
		Dt: DefaultDt, Duration: 10.0,
		Region: RegionConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"frigid": {
		Temperature: 20, Population: 80, SizeScale: 1.0,
		Dt: DefaultDt, Duration: 10.0,
		Region: RegionConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"furnace": {
		Temperature: 1500, Population: 80, SizeScale: 1.0,
		Dt: DefaultDt, Duration: 10.0,
		Region: RegionConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"crowd": {
		Temperature: 300, Population: 250, SizeScale: 1.2,
		Dt: DefaultDt, Duration: 10.0,
		Region: RegionConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
	"trace": {
		Temperature: 300, Population: 12, SizeScale: 1.5,
		Dt: DefaultDt, Duration: 20.0,
		Region: RegionConfig{Width: DefaultWidth, Height: DefaultHeight},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
