// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.2
//

package gnssest

const (
	PI   = 3.1415926535897932  // Pi
	C    = 2.99792458e8        // Speed of light [m/s]
	Re   = 6378137.0           // Earth's radius [m]
	Fe   = 1.0 / 298.257223563 // Earth's flattening
	OMGE = 7.2921151467e-5     // Earth rotation angular velocity [rad/s]
	L1   = 1575420000.0        // L1 frequency of G/J/S [Hz]
	L2   = 1227600000.0        // L2 frequency of G/J [Hz]
	L5   = 1176450000.0        // L5 frequency of G/J/S [Hz]
	E1   = 1575420000.0        // E1 frequency of Galileo [Hz]
	E5a  = 1176450000.0        // E5a frequency of Galileo [Hz]
	E5b  = 1207140000.0        // E5b frequency of Galileo [Hz]
	B1   = 1561098000.0        // B1 frequency of Beidou [Hz]
	B2   = 1207140000.0        // B2 frequency of Beidou [Hz]
	G1   = 1602000000.0        // G1 frequency of Glonass [Hz]
	G1d  = 562500.0            // Frequency division step of Glonass G1 [Hz]
	G2   = 1246000000.0        // G2 frequency of Glonass [Hz]
	G2d  = 437500.0            // Frequency division step of Glonass G2 [Hz]
)
