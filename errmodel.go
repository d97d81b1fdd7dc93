// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.30
//

package gnssest

import (
	"math"
)

// Elevation/CN0 weighting variant of the measurement error model
type WeightFunc int

const (
	WeightUnit     WeightFunc = iota // Equal variance for all geometries
	WeightCosecant                   // 1/sin(el)
	WeightRtklib                     // (1 + 1/sin^2(el))/2, RTKLIB style
	WeightCn0                        // RTKLIB style scaled by signal strength
)

// Minimum elevation angle for the weighting functions [deg]
const MIN_ELEVATION_FOR_WEIGHT = 5.0

// Measurement error model mapping geometry and signal quality to the
// baseline measurement variances. All variance functions are monotonically
// non-increasing in elevation and CN0.
type MeasErrorModel struct {
	Weight WeightFunc `json:"weightingFunction"`

	CodeStd    float64 `json:"codeStdDev"`      // Code measurement error std at zenith [m]
	CarrierStd float64 `json:"carrierStdDev"`   // Carrier-phase measurement error std at zenith [m]
	RangeRStd  float64 `json:"rangeRateStdDev"` // Range-rate measurement error std at zenith [m/s]

	CodeBiasStd float64 `json:"codeBiasStdDev"` // Code bias error std [m]
	ErrBrdci    float64 `json:"errBrdci"`       // Broadcast ionosphere model error factor
	ErrSaas     float64 `json:"errSaas"`        // Saastamoinen model error std [m]

	Cn0Ref   float64 `json:"cn0Ref"`   // CN0 above which no extra variance is added [dB-Hz]
	Cn0Slope float64 `json:"cn0Slope"` // CN0 scale of the extra variance [dB-Hz per decade]
}

// Defaults follow the RTKLIB processing options
func NewMeasErrorModel() *MeasErrorModel {
	return &MeasErrorModel{
		Weight:      WeightRtklib,
		CodeStd:     0.3,
		CarrierStd:  0.003,
		RangeRStd:   0.1,
		CodeBiasStd: 0.3,
		ErrBrdci:    0.5,
		ErrSaas:     0.3,
		Cn0Ref:      45.0,
		Cn0Slope:    10.0,
	}
}

// System dependent error factor (RTKLIB EFACT)
func sysErrFactor(sys SysType) float64 {
	switch sys {
	case 'R':
		return 1.5
	case 'S':
		return 3.0
	}
	return 1.0
}

// Weight factor >= 1, non-increasing in elevation and CN0
func (p *MeasErrorModel) weightFactor(elev, cn0 float64) float64 {
	el := elev
	if el < ToRad(MIN_ELEVATION_FOR_WEIGHT) {
		el = ToRad(MIN_ELEVATION_FOR_WEIGHT)
	}
	w := 1.0
	switch p.Weight {
	case WeightUnit:
		w = 1.0
	case WeightCosecant:
		w = 1.0 / math.Sin(el)
	case WeightRtklib, WeightCn0:
		w = 0.5 * (1.0 + 1.0/SQ(math.Sin(el)))
	}
	if p.Weight == WeightCn0 && cn0 < p.Cn0Ref {
		w *= math.Pow(10.0, (p.Cn0Ref-cn0)/p.Cn0Slope)
	}
	return w
}

// Pseudorange measurement error variance [m^2]
func (p *MeasErrorModel) PsrMeasErrorVar(sys SysType, elev, cn0 float64) float64 {
	return SQ(sysErrFactor(sys)*p.CodeStd) * p.weightFactor(elev, cn0)
}

// Carrier-phase measurement error variance [m^2]
func (p *MeasErrorModel) CarrierMeasErrorVar(sys SysType, elev, cn0 float64) float64 {
	return SQ(sysErrFactor(sys)*p.CarrierStd) * p.weightFactor(elev, cn0)
}

// Range-rate (Doppler) measurement error variance [m^2/s^2]
func (p *MeasErrorModel) PsrRateMeasErrorVar(sys SysType, elev, cn0 float64) float64 {
	return SQ(sysErrFactor(sys)*p.RangeRStd) * p.weightFactor(elev, cn0)
}

// Code bias error variance [m^2], independent of geometry
func (p *MeasErrorModel) CodeBiasErrorVar() float64 {
	return SQ(p.CodeBiasStd)
}

// Error variance of the broadcast ionosphere model [m^2]. Proportional to
// the delay, so a disabled model contributes nothing.
func (p *MeasErrorModel) IonoErrorVar(ionoDelay float64) float64 {
	return SQ(p.ErrBrdci * ionoDelay)
}

// Error variance of the troposphere model [m^2]. Zero for a zero delay,
// so a disabled model contributes nothing.
func (p *MeasErrorModel) TropoErrorVar(tropoDelay, elev float64) float64 {
	if tropoDelay == 0.0 {
		return 0.0
	}
	return SQ(p.ErrSaas / (math.Sin(elev) + 0.1))
}
