// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.9
//

package gnssest

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"
)

// Type representing satellite name like "G10"
type SatType string

// Type representing satellite system like 'G'
type SysType byte

// Extract satellite system from satellite name
func (p *SatType) Sys() SysType {
	return SysType((*p)[0])
}

// Check validity of satellite system
func (p *SysType) IsValid() bool {
	return *p == 'G' || *p == 'J' || *p == 'E' || *p == 'R' || *p == 'C' || *p == 'S'
}

// Extract satellite number from satellite name
func (p *SatType) Num() int {
	i, err := strconv.Atoi(string((*p)[1:3]))
	if err != nil {
		return 0
	}
	return i
}

// Carrier frequency band. The set is closed, one band belongs to exactly
// one satellite system family.
type FreqType int

const (
	FreqL1 FreqType = iota // GPS/QZSS/SBAS L1
	FreqL2                 // GPS/QZSS L2
	FreqL5                 // GPS/QZSS/SBAS L5
	FreqE1                 // Galileo E1
	FreqE5a                // Galileo E5a
	FreqE5b                // Galileo E5b
	FreqB1                 // Beidou B1I
	FreqB2                 // Beidou B2I
	FreqG1                 // Glonass G1 (FDMA)
	FreqG2                 // Glonass G2 (FDMA)
)

var freqNames = []string{"L1", "L2", "L5", "E1", "E5a", "E5b", "B1", "B2", "G1", "G2"}

// Display and residual-vector ordering of the satellite systems
var sysOrder = map[SysType]int{'G': 0, 'J': 1, 'E': 2, 'R': 3, 'C': 4, 'S': 5}

func (f FreqType) String() string {
	if int(f) < 0 || int(f) >= len(freqNames) {
		return "UNKNOWN!"
	}
	return freqNames[f]
}

// Carrier frequency [Hz]. freqNum is the Glonass FDMA channel number and
// ignored for all other bands.
func (f FreqType) Hz(freqNum int8) float64 {
	switch f {
	case FreqL1:
		return L1
	case FreqL2:
		return L2
	case FreqL5:
		return L5
	case FreqE1:
		return E1
	case FreqE5a:
		return E5a
	case FreqE5b:
		return E5b
	case FreqB1:
		return B1
	case FreqB2:
		return B2
	case FreqG1:
		return G1 + G1d*float64(freqNum)
	case FreqG2:
		return G2 + G2d*float64(freqNum)
	}
	return 0
}

// Satellite systems the band belongs to
func (f FreqType) systems() []SysType {
	switch f {
	case FreqL1, FreqL5:
		return []SysType{'G', 'J', 'S'}
	case FreqL2:
		return []SysType{'G', 'J'}
	case FreqE1, FreqE5a, FreqE5b:
		return []SysType{'E'}
	case FreqB1, FreqB2:
		return []SysType{'C'}
	case FreqG1, FreqG2:
		return []SysType{'R'}
	}
	return nil
}

// Identifier of one satellite signal: satellite (which carries the system)
// plus carrier frequency band. Used as map key of the observation set.
type SatSigId struct {
	Sat  SatType
	Freq FreqType
}

func (p SatSigId) Sys() SysType {
	return p.Sat.Sys()
}

// Check that the band is transmitted by the satellite's system
func (p SatSigId) IsValid() bool {
	sys := p.Sat.Sys()
	return sys.IsValid() && slices.Contains(p.Freq.systems(), sys)
}

func (p SatSigId) String() string {
	return fmt.Sprintf("%s-%s", p.Freq, p.Sat)
}

// Observable kind. Closed set, switch statements over it are exhaustive
// and carry no default case.
type ObsType int

const (
	Pseudorange ObsType = iota // Code range [m]
	Carrier                    // Carrier-phase range [m]
	Doppler                    // Range rate [m/s]

	ObsTypeCount
)

func (p ObsType) String() string {
	switch p {
	case Pseudorange:
		return "Pseudorange"
	case Carrier:
		return "Carrier"
	case Doppler:
		return "Doppler"
	case ObsTypeCount:
		break
	}
	return "UNKNOWN!"
}
