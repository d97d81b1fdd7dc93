// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.16
//

package gnssest

import (
	"fmt"
)

// Value with standard deviation
type UncertainVal struct {
	Val float64
	Std float64
}

// Receiver clock state estimated by the downstream filter. The system
// time-difference entries hold the offset of each satellite system time
// to the reference system of the receiver clock.
type RecvClock struct {
	Bias  UncertainVal // Clock bias [s]
	Drift UncertainVal // Clock drift [s/s]

	SysTimeDiffBias  map[SysType]UncertainVal // Per-system time-difference bias [s]
	SysTimeDiffDrift map[SysType]UncertainVal // Per-system time-difference drift [s/s]
}

// Bias of the system time difference. An entry has to exist for every
// system present in the observation set, zero-valued for the reference
// system. A missing entry is an upstream construction defect.
func (p *RecvClock) SysBias(sys SysType) UncertainVal {
	v, ok := p.SysTimeDiffBias[sys]
	if !ok {
		panic(fmt.Sprintf("no system time-difference bias for system %c", sys))
	}
	return v
}

// Drift of the system time difference, same contract as SysBias
func (p *RecvClock) SysDrift(sys SysType) UncertainVal {
	v, ok := p.SysTimeDiffDrift[sys]
	if !ok {
		panic(fmt.Sprintf("no system time-difference drift for system %c", sys))
	}
	return v
}

// Per-receiver state supplied by the downstream filter for one epoch
type RecvState struct {
	Pos PosXYZ // Antenna position, ECEF [m]
	Vel PosXYZ // Antenna velocity, ECEF [m/s]

	Clk RecvClock // Clock bias/drift and system time differences

	// Inter-frequency bias [s] of each non-reference band, empty if the
	// receiver tracks a single band
	InterFreqBias map[FreqType]UncertainVal
}

// Constructor with zero-valued clock entries for the given systems
func NewRecvState(pos PosXYZ, systems []SysType) *RecvState {
	clk := RecvClock{
		SysTimeDiffBias:  map[SysType]UncertainVal{},
		SysTimeDiffDrift: map[SysType]UncertainVal{},
	}
	for _, sys := range systems {
		clk.SysTimeDiffBias[sys] = UncertainVal{}
		clk.SysTimeDiffDrift[sys] = UncertainVal{}
	}
	return &RecvState{
		Pos:           pos,
		Clk:           clk,
		InterFreqBias: map[FreqType]UncertainVal{},
	}
}
