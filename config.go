// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.12.14
//

// Thin option surface for the estimator. Model selection happens by name,
// unknown names fail when the configuration is loaded, not during the
// epoch computation.

package gnssest

import (
	"fmt"
)

// Recognized options of the estimator. The field tags match the option
// names of the surrounding persistence layer.
type EstimatorOpt struct {
	IonosphereModel      IonoModel      `json:"ionosphereModel"`
	TroposphereModels    TropoSelection `json:"troposphereModels"`
	GnssMeasurementError MeasErrorModel `json:"gnssMeasurementError"`
}

func NewEstimatorOpt() *EstimatorOpt {
	return &EstimatorOpt{
		IonosphereModel:      IonoKlobuchar,
		TroposphereModels:    NewTropoSelection(),
		GnssMeasurementError: *NewMeasErrorModel(),
	}
}

// Build a configured estimator
func (p *EstimatorOpt) NewEstimator() *Estimator {
	err := p.GnssMeasurementError
	return &Estimator{
		Iono:  p.IonosphereModel,
		Tropo: p.TroposphereModels,
		Err:   &err,
	}
}

// ------------------------------------
// Name parsing of the model enums, usable as flag.Value and in JSON
// ------------------------------------

func lookupName(names []string, s string, what string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", what, s)
}

var ionoNames = []string{"none", "klobuchar"}

func (p IonoModel) String() string {
	if int(p) < 0 || int(p) >= len(ionoNames) {
		return "UNKNOWN!"
	}
	return ionoNames[p]
}

func (p *IonoModel) Set(s string) error {
	i, err := lookupName(ionoNames, s, "ionosphere model")
	if err != nil {
		return err
	}
	*p = IonoModel(i)
	return nil
}

func (p IonoModel) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (p *IonoModel) UnmarshalText(text []byte) error { return p.Set(string(text)) }

var tropoNames = []string{"none", "saastamoinen"}

func (p TropoModel) String() string {
	if int(p) < 0 || int(p) >= len(tropoNames) {
		return "UNKNOWN!"
	}
	return tropoNames[p]
}

func (p *TropoModel) Set(s string) error {
	i, err := lookupName(tropoNames, s, "troposphere model")
	if err != nil {
		return err
	}
	*p = TropoModel(i)
	return nil
}

func (p TropoModel) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (p *TropoModel) UnmarshalText(text []byte) error { return p.Set(string(text)) }

var mapFuncNames = []string{"cosecant", "niell"}

func (p TropoMapFunc) String() string {
	if int(p) < 0 || int(p) >= len(mapFuncNames) {
		return "UNKNOWN!"
	}
	return mapFuncNames[p]
}

func (p *TropoMapFunc) Set(s string) error {
	i, err := lookupName(mapFuncNames, s, "troposphere mapping function")
	if err != nil {
		return err
	}
	*p = TropoMapFunc(i)
	return nil
}

func (p TropoMapFunc) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (p *TropoMapFunc) UnmarshalText(text []byte) error { return p.Set(string(text)) }

var weightNames = []string{"unit", "cosecant", "rtklib", "cn0"}

func (p WeightFunc) String() string {
	if int(p) < 0 || int(p) >= len(weightNames) {
		return "UNKNOWN!"
	}
	return weightNames[p]
}

func (p *WeightFunc) Set(s string) error {
	i, err := lookupName(weightNames, s, "weighting function")
	if err != nil {
		return err
	}
	*p = WeightFunc(i)
	return nil
}

func (p WeightFunc) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (p *WeightFunc) UnmarshalText(text []byte) error { return p.Set(string(text)) }

// Difference mode parsing (for command arguments)
func (p *DiffMode) Set(s string) error {
	switch s {
	case "none":
		*p = NoDifference
	case "single":
		*p = SingleDifference
	case "double":
		*p = DoubleDifference
	default:
		return fmt.Errorf("unknown difference mode %q", s)
	}
	return nil
}
