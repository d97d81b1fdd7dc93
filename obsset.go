// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.16
//

package gnssest

import (
	"sort"
)

// One measurement of one observable together with its modeled estimate and
// measurement variance. Meas is filled by the upstream collector, Est and
// MeasVar by the estimator.
type ObsData struct {
	Meas    float64 // Measurement (psr [m], carrier [m], range rate [m/s])
	Est     float64 // Estimate (psr [m], carrier [m], range rate [m/s])
	MeasVar float64 // Variance of the measurement (psr [m^2], carrier [m^2], range rate [m^2/s^2])
}

// Intermediate correction terms, written back for diagnostics
type CorrTerms struct {
	Range      float64     // Receiver-satellite geometric range [m]
	Zenith     ZenithDelay // Troposphere zenith delays and mapping factors
	TropoDelay float64     // Slant troposphere delay [m]
	IonoDelay  float64     // Slant ionosphere delay [m]
	Sagnac     float64     // Sagnac range correction [m]
}

// Observation of one signal by one receiver. Satellite position, velocity
// and clock are resolved for the transmit time by the upstream collector,
// per signal because of the group delay.
type RecvObs struct {
	SatPos      PosXYZ  // Satellite position, ECEF [m]
	SatVel      PosXYZ  // Satellite velocity, ECEF [m/s]
	SatClkBias  float64 // Satellite clock bias [s]
	SatClkDrift float64 // Satellite clock drift [s/s]
	Elev        float64 // Satellite elevation [rad]
	Azim        float64 // Satellite azimuth [rad]
	LOS         PosXYZ  // Line-of-sight unit vector receiver to satellite, ECEF
	CN0         float64 // Carrier-to-noise density ratio [dB-Hz], 0 if unknown

	Obs map[ObsType]*ObsData // Per-observable measurement and estimate

	Terms CorrTerms // Correction terms of the last estimation run
}

// Constructor deriving elevation, azimuth and line of sight from the
// receiver and satellite geometry
func NewRecvObs(recvPos PosXYZ, satPos, satVel PosXYZ, satClkBias, satClkDrift float64) *RecvObs {
	return &RecvObs{
		SatPos:      satPos,
		SatVel:      satVel,
		SatClkBias:  satClkBias,
		SatClkDrift: satClkDrift,
		Elev:        recvPos.Elevation(satPos),
		Azim:        recvPos.Azimuth(satPos),
		LOS:         LOSUnit(&recvPos, &satPos),
		Obs:         map[ObsType]*ObsData{},
	}
}

// CN0 with unknown signal quality defaulting to 1.0
func (p *RecvObs) Cn0OrDefault() float64 {
	if p.CN0 == 0 {
		return 1.0
	}
	return p.CN0
}

// All per-receiver data of one signal
type SigObs struct {
	FreqNum   int8       // Glonass FDMA channel number, 0 otherwise
	SatPosVar float64    // Satellite position variance from the orbit source [m^2]
	Recv      []*RecvObs // Indexed by receiver kind, nil if the receiver did not track the signal
}

func NewSigObs(freqNum int8, satPosVar float64, recvCount int) *SigObs {
	return &SigObs{
		FreqNum:   freqNum,
		SatPosVar: satPosVar,
		Recv:      make([]*RecvObs, recvCount),
	}
}

// Observation data of all signals of one epoch. Constructed upstream,
// annotated in place by the estimator, forwarded downstream, discarded.
type ObsSet struct {
	Time GTime                // Epoch time
	Sig  map[SatSigId]*SigObs // Data for each signal
}

func NewObsSet(t GTime) *ObsSet {
	return &ObsSet{
		Time: t,
		Sig:  map[SatSigId]*SigObs{},
	}
}

// Return signal keys sorted by band, then system, then satellite number.
// Map iteration order must not influence logs or residual vector layout.
func (p *ObsSet) SigIds() []SatSigId {
	s := make([]SatSigId, 0, len(p.Sig))
	for k := range p.Sig {
		s = append(s, k)
	}
	sort.Slice(s, func(i, j int) bool {
		if s[i].Freq != s[j].Freq {
			return s[i].Freq < s[j].Freq
		}
		if s[i].Sat.Sys() != s[j].Sat.Sys() {
			return sysOrder[s[i].Sat.Sys()] < sysOrder[s[j].Sat.Sys()]
		}
		return s[i].Sat.Num() < s[j].Sat.Num()
	})
	return s
}

// Count observables over all signals and receivers
func (p *ObsSet) CountObservables() [ObsTypeCount]int {
	var n [ObsTypeCount]int
	for _, sig := range p.Sig {
		for _, ro := range sig.Recv {
			if ro == nil {
				continue
			}
			for ot := range ro.Obs {
				n[ot]++
			}
		}
	}
	return n
}
