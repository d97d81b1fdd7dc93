// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.11.16
//

package gnssest

// Line-of-sight unit vector from the receiver antenna to the satellite
// in ECEF coordinates
func LOSUnit(recvPos, satPos *PosXYZ) PosXYZ {
	return PosXYZ{
		X: DistDx(recvPos, satPos),
		Y: DistDy(recvPos, satPos),
		Z: DistDz(recvPos, satPos),
	}
}

// Earth rotation (Sagnac) range correction [m]. The signal travels while
// the ECEF frame rotates under it, so the range measured in the rotating
// frame differs from the geometric distance at reception time.
func SagnacCorrection(recvPos, satPos *PosXYZ) float64 {
	return OMGE / C * (satPos.X*recvPos.Y - satPos.Y*recvPos.X)
}

// Earth rotation (Sagnac) range-rate correction [m/s], the time derivative
// of the range form evaluated from both positions and velocities
func SagnacRateCorrection(recvPos, satPos, recvVel, satVel *PosXYZ) float64 {
	return OMGE / C * (satVel.Y*recvPos.X + satPos.Y*recvVel.X -
		satVel.X*recvPos.Y - satPos.X*recvVel.Y)
}
