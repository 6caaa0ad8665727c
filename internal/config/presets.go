package config

var Presets = map[string]*Config{
	"underdamped": {
		System:  SystemConfig{Mass: 1.0, Damping: 0.5, Stiffness: 20.0},
		Forcing: ForcingConfig{Amplitude: 0.0, Omega: 5.0},
		Initial: InitialConfig{Position: 1.0, Velocity: 0.0},
		Sim:     SimConfig{Duration: 10.0, Points: 1000},
		Sweep:   SweepConfig{MaxFreq: 100.0, Points: 1000},
	},
	"critical": {
		System:  SystemConfig{Mass: 1.0, Damping: 2.0, Stiffness: 1.0},
		Forcing: ForcingConfig{Amplitude: 0.0, Omega: 1.0},
		Initial: InitialConfig{Position: 1.0, Velocity: 0.0},
		Sim:     SimConfig{Duration: 10.0, Points: 1000},
		Sweep:   SweepConfig{MaxFreq: 100.0, Points: 1000},
	},
	"overdamped": {
		System:  SystemConfig{Mass: 1.0, Damping: 10.0, Stiffness: 5.0},
		Forcing: ForcingConfig{Amplitude: 0.0, Omega: 1.0},
		Initial: InitialConfig{Position: 1.0, Velocity: 0.0},
		Sim:     SimConfig{Duration: 20.0, Points: 2000},
		Sweep:   SweepConfig{MaxFreq: 100.0, Points: 1000},
	},
	"resonance": {
		System:  SystemConfig{Mass: 1.0, Damping: 0.4, Stiffness: 25.0},
		Forcing: ForcingConfig{Amplitude: 10.0, Omega: 5.0},
		Initial: InitialConfig{Position: 0.0, Velocity: 0.0},
		Sim:     SimConfig{Duration: 30.0, Points: 5000},
		Sweep:   SweepConfig{MaxFreq: 50.0, Points: 1000},
	},
	"free": {
		System:  SystemConfig{Mass: 1.0, Damping: 0.0, Stiffness: 10.0},
		Forcing: ForcingConfig{Amplitude: 0.0, Omega: 1.0},
		Initial: InitialConfig{Position: 1.0, Velocity: 0.0},
		Sim:     SimConfig{Duration: 20.0, Points: 2000},
		Sweep:   SweepConfig{MaxFreq: 100.0, Points: 1000},
	},
	"stiff": {
		System:  SystemConfig{Mass: 0.1, Damping: 1.0, Stiffness: 100.0},
		Forcing: ForcingConfig{Amplitude: 5.0, Omega: 20.0},
		Initial: InitialConfig{Position: 0.5, Velocity: 0.0},
		Sim:     SimConfig{Duration: 5.0, Points: 5000},
		Sweep:   SweepConfig{MaxFreq: 200.0, Points: 1000},
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
	return names
}
