// This code is adapted from RTKLIB.
// The author gratefully acknowledges T.Takasu for his outstanding contribution in developing RTKLIB.
//
// Last modified: 2025.11.23
//

package gnssest

import (
	"math"
)

// Ionosphere model
type IonoModel int

const (
	IonoNone      IonoModel = iota // Disabled, all delays zero
	IonoKlobuchar                  // Klobuchar broadcast model
)

// Broadcast ionospheric correction parameters (Klobuchar alpha/beta) as
// decoded from the navigation message. Treated as opaque by the caller.
type IonoParams struct {
	Alpha [4]float64
	Beta  [4]float64
}

// GPS broadcast coefficients of 2004/1/1, used when no parameters were
// received yet
var ionoDefault = IonoParams{
	Alpha: [4]float64{0.1118e-07, -0.7451e-08, -0.5961e-07, 0.1192e-06},
	Beta:  [4]float64{0.1167e+06, -0.2294e+06, -0.1311e+06, 0.1049e+07},
}

// Calculate the slant ionosphere delay [m] for one signal path. The
// Klobuchar model yields the L1 group delay, which is scaled to the signal
// frequency by (f_L1/f)^2. The returned delay is positive for pseudorange
// and has to be subtracted for carrier phase.
func IonoDelay(tow float64, freq FreqType, freqNum int8, llh *PosLLH, elev, azim float64, model IonoModel, params *IonoParams) float64 {
	switch model {
	case IonoNone:
		return 0.0
	case IonoKlobuchar:
		d := klobuchar(tow, llh, elev, azim, params)
		f := freq.Hz(freqNum)
		if f <= 0.0 {
			return 0.0
		}
		return d * SQ(L1/f)
	}
	return 0.0
}

// Klobuchar broadcast model, L1 delay [m]
func klobuchar(tow float64, llh *PosLLH, elev, azim float64, params *IonoParams) float64 {
	if llh.Hei < -1e3 || elev <= 0.0 {
		return 0.0
	}
	ion := params
	if ion == nil || (norm4(ion.Alpha) <= 0.0 && norm4(ion.Beta) <= 0.0) {
		ion = &ionoDefault
	}

	// Earth centered angle (semi-circle)
	psi := 0.0137/(elev/PI+0.11) - 0.022

	// Subionospheric latitude/longitude (semi-circle)
	phi := llh.Lat/PI + psi*math.Cos(azim)
	if phi > 0.416 {
		phi = 0.416
	} else if phi < -0.416 {
		phi = -0.416
	}
	lam := llh.Lon/PI + psi*math.Sin(azim)/math.Cos(phi*PI)

	// Geomagnetic latitude (semi-circle)
	phi += 0.064 * math.Cos((lam-1.617)*PI)

	// Local time [s]
	tt := 43200.0*lam + tow
	tt -= math.Floor(tt/86400.0) * 86400.0

	// Slant factor
	f := 1.0 + 16.0*math.Pow(0.53-elev/PI, 3.0)

	// Ionospheric delay
	amp := ion.Alpha[0] + phi*(ion.Alpha[1]+phi*(ion.Alpha[2]+phi*ion.Alpha[3]))
	per := ion.Beta[0] + phi*(ion.Beta[1]+phi*(ion.Beta[2]+phi*ion.Beta[3]))
	if amp < 0.0 {
		amp = 0.0
	}
	if per < 72000.0 {
		per = 72000.0
	}
	x := 2.0 * PI * (tt - 50400.0) / per
	if math.Abs(x) < 1.57 {
		return C * f * (5e-9 + amp*(1.0+x*x*(-0.5+x*x*x*x/24.0)))
	}
	return C * f * 5e-9
}

func norm4(v [4]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2] + v[3]*v[3])
}
