// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.12.7
//

// Implements the observation estimation and error budget for GNSS positioning.

package gnssest

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// How the observations get used downstream. Differencing cancels
// common-mode error terms, so it changes which clock and bias terms enter
// the estimate and which variance contributions remain.
type DiffMode int

const (
	NoDifference     DiffMode = iota // Estimation is not differenced
	SingleDifference                 // Differenced across receivers
	DoubleDifference                 // Differenced across receivers and satellites
)

func (p DiffMode) String() string {
	switch p {
	case NoDifference:
		return "none"
	case SingleDifference:
		return "single"
	case DoubleDifference:
		return "double"
	}
	return "UNKNOWN!"
}

// Term inclusion per difference mode. Single differencing cancels
// satellite-common terms, double differencing additionally cancels the
// receiver clock terms. The inter-frequency bias survives double
// differencing because it is frequency specific, not receiver-pair
// specific.
type termFlags struct {
	recvClk     bool // Receiver clock bias/drift
	satClk      bool // Satellite clock bias/drift (subtracted)
	sysTimeDiff bool // Per-system time-difference bias/drift
	interFreq   bool // Inter-frequency bias (code only)

	satPosAtmoVar bool // Satellite position + iono + tropo variance (code/carrier)
	codeBiasVar   bool // Code bias + inter-frequency variance (code only)
	recvClkVar    bool // Receiver clock (+ system time-difference) variance
}

func diffTerms(mode DiffMode) termFlags {
	return termFlags{
		recvClk:       mode != DoubleDifference,
		satClk:        mode == NoDifference,
		sysTimeDiff:   mode != DoubleDifference,
		interFreq:     true,
		satPosAtmoVar: mode == NoDifference,
		codeBiasVar:   mode == NoDifference,
		recvClkVar:    mode != DoubleDifference,
	}
}

// Estimator calculates the modeled observations and their measurement
// variances for every signal/receiver pair of an epoch. It keeps no state
// across epochs, all inputs are supplied fresh each call.
type Estimator struct {
	Iono  IonoModel       // Ionosphere model
	Tropo TropoSelection  // Troposphere model and mapping functions
	Err   *MeasErrorModel // Measurement error model
}

// Constructor with the default compensation models
func NewEstimator() *Estimator {
	return &Estimator{
		Iono:  IonoKlobuchar,
		Tropo: NewTropoSelection(),
		Err:   NewMeasErrorModel(),
	}
}

// CalcEstimates calculates the observation estimates and measurement
// variances of one epoch and writes them into the set in place.
//
// Parameters:
//   - set: Observation data of one epoch, mutated in place
//   - recvs: Receiver states, indexed like SigObs.Recv
//   - iono: Broadcast ionospheric correction parameters (may be nil)
//   - mode: Difference mode the observations get used in
//
// The computation is deterministic and does not fail on well-formed input.
// A receiver state or clock entry missing for data present in the set, or
// a signal key pairing a band with a foreign system, is an upstream
// construction defect and panics.
func (p *Estimator) CalcEstimates(set *ObsSet, recvs []*RecvState, iono *IonoParams, mode DiffMode) {
	tf := diffTerms(mode)
	trace := log.IsLevelEnabled(log.TraceLevel)

	for _, sigId := range set.SigIds() {
		if !sigId.IsValid() {
			panic(fmt.Sprintf("signal %s pairs a band with a foreign system", sigId))
		}
		sig := set.Sig[sigId]
		sys := sigId.Sys()

		for r, ro := range sig.Recv {
			if ro == nil {
				continue
			}
			if r >= len(recvs) || recvs[r] == nil {
				panic(fmt.Sprintf("no receiver state for receiver %d referenced by signal %s", r, sigId))
			}
			recv := recvs[r]
			llh := recv.Pos.ToLLH()

			// Receiver-satellite geometric range [m]
			rho := EucDist(&recv.Pos, &ro.SatPos)

			// Troposphere propagation delay [m]
			zen := TropoDelayAndMapping(&set.Time, &llh, ro.Elev, ro.Azim, p.Tropo)
			dpsrT := zen.Slant()

			// Ionosphere propagation delay [m]
			dpsrI := IonoDelay(set.Time.Tow(), sigId.Freq, sig.FreqNum, &llh, ro.Elev, ro.Azim, p.Iono, iono)

			// Sagnac correction [m]
			dsag := SagnacCorrection(&recv.Pos, &ro.SatPos)

			ro.Terms = CorrTerms{
				Range:      rho,
				Zenith:     zen,
				TropoDelay: dpsrT,
				IonoDelay:  dpsrI,
				Sagnac:     dsag,
			}

			cn0 := ro.Cn0OrDefault()

			for ot, od := range ro.Obs {
				p.estimateObs(sigId, sig, ro, recv, sys, ot, od, tf, rho, dpsrT, dpsrI, dsag, cn0)
				if trace {
					p.traceBudget(sigId, r, ot, od, ro, mode)
				}
			}
		}
	}
}

// Estimate and measurement variance of a single observable
func (p *Estimator) estimateObs(sigId SatSigId, sig *SigObs, ro *RecvObs, recv *RecvState,
	sys SysType, ot ObsType, od *ObsData, tf termFlags,
	rho, dpsrT, dpsrI, dsag, cn0 float64) {

	switch ot {
	case Pseudorange:
		clk := 0.0
		if tf.recvClk {
			clk += recv.Clk.Bias.Val
		}
		if tf.satClk {
			clk -= ro.SatClkBias
		}
		if tf.sysTimeDiff {
			clk += recv.Clk.SysBias(sys).Val
		}
		if ifb, ok := recv.InterFreqBias[sigId.Freq]; ok && tf.interFreq {
			clk += ifb.Val
		}
		od.Est = rho + dsag + dpsrT + dpsrI + C*clk
		od.MeasVar = p.Err.PsrMeasErrorVar(sys, ro.Elev, cn0)

	case Carrier:
		clk := 0.0
		if tf.recvClk {
			clk += recv.Clk.Bias.Val
		}
		if tf.satClk {
			clk -= ro.SatClkBias
		}
		if tf.sysTimeDiff {
			clk += recv.Clk.SysBias(sys).Val
		}
		od.Est = rho + dsag + dpsrT - dpsrI + C*clk
		od.MeasVar = p.Err.CarrierMeasErrorVar(sys, ro.Elev, cn0)

	case Doppler:
		relVel := ro.SatVel.Sub(recv.Vel)
		drift := 0.0
		if tf.recvClk {
			drift += recv.Clk.Drift.Val
		}
		if tf.satClk {
			drift -= ro.SatClkDrift
		}
		if tf.sysTimeDiff {
			drift += recv.Clk.SysDrift(sys).Val
		}
		od.Est = ro.LOS.Dot(relVel) -
			SagnacRateCorrection(&recv.Pos, &ro.SatPos, &recv.Vel, &ro.SatVel) +
			C*drift
		od.MeasVar = p.Err.PsrRateMeasErrorVar(sys, ro.Elev, cn0)

	case ObsTypeCount:
		return
	}

	// Mode dependent variance contributions, additive on the baseline
	if tf.satPosAtmoVar && (ot == Pseudorange || ot == Carrier) {
		od.MeasVar += sig.SatPosVar +
			p.Err.IonoErrorVar(dpsrI) +
			p.Err.TropoErrorVar(dpsrT, ro.Elev)
	}
	if tf.codeBiasVar && ot == Pseudorange {
		od.MeasVar += p.Err.CodeBiasErrorVar()
		if ifb, ok := recv.InterFreqBias[sigId.Freq]; ok {
			od.MeasVar += SQ(C * ifb.Std)
		}
	}
	if tf.recvClkVar {
		if ot == Doppler {
			od.MeasVar += SQ(C) * (SQ(recv.Clk.Drift.Std) + SQ(recv.Clk.SysDrift(sys).Std))
		} else {
			od.MeasVar += SQ(C) * (SQ(recv.Clk.Bias.Std) + SQ(recv.Clk.SysBias(sys).Std))
		}
	}
}

// Per-term budget dump of one observable at trace level
func (p *Estimator) traceBudget(sigId SatSigId, r int, ot ObsType, od *ObsData, ro *RecvObs, mode DiffMode) {
	unit := "m"
	if ot == Doppler {
		unit = "m/s"
	}
	log.Tracef("[%s][%s][recv %d] mode=%s", sigId, ot, r, mode)
	if ot != Doppler {
		log.Tracef("[%s][%s][recv %d]   %14.4f [%s] geometric range", sigId, ot, r, ro.Terms.Range, unit)
		log.Tracef("[%s][%s][recv %d] + %14.4f [%s] sagnac correction", sigId, ot, r, ro.Terms.Sagnac, unit)
		if ro.Terms.TropoDelay != 0.0 {
			log.Tracef("[%s][%s][recv %d] + %14.4f [%s] troposphere delay", sigId, ot, r, ro.Terms.TropoDelay, unit)
		}
		if ro.Terms.IonoDelay != 0.0 {
			sign := "+"
			if ot == Carrier {
				sign = "-"
			}
			log.Tracef("[%s][%s][recv %d] %s %14.4f [%s] ionosphere delay", sigId, ot, r, sign, ro.Terms.IonoDelay, unit)
		}
	}
	log.Tracef("[%s][%s][recv %d] = %14.4f [%s] estimate (meas %14.4f, var %.4g [%s^2])",
		sigId, ot, r, od.Est, unit, od.Meas, od.MeasVar, unit)
}
