// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.12.21
//

package gnssest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// Two-satellite epoch with the estimator already run and measurements set
// to the estimate plus a known offset
func residualFixture(t *testing.T, offsets map[SatType]float64) *ObsSet {
	t.Helper()

	recvPos, _ := staticGeometry()
	set := NewObsSet(testEpoch)
	recv := NewRecvState(recvPos, []SysType{'G'})

	for sat := range offsets {
		satPos := NewPosENU(5e6, -3e6, 20e6).ToXYZ(recvPos)
		ro := NewRecvObs(recvPos, satPos, PosXYZ{}, 0, 0)
		ro.Obs[Pseudorange] = &ObsData{}
		sig := NewSigObs(0, 0, 1)
		sig.Recv[0] = ro
		set.Sig[SatSigId{Sat: sat, Freq: FreqL1}] = sig
	}

	disabledEstimator().CalcEstimates(set, []*RecvState{recv}, nil, NoDifference)
	for sat, off := range offsets {
		od := set.Sig[SatSigId{Sat: sat, Freq: FreqL1}].Recv[0].Obs[Pseudorange]
		od.Meas = od.Est + off
	}
	return set
}

func TestBuildResiduals(t *testing.T) {
	t.Parallel()

	set := residualFixture(t, map[SatType]float64{"G03": 1.5, "G17": -0.5})

	ids, dr, W, err := BuildResiduals(set, 0, Pseudorange)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	want := map[SatType]float64{"G03": 1.5, "G17": -0.5}
	for i, id := range ids {
		assert.InDelta(t, want[id.Sat], dr.AtVec(i), 1e-9, "%s", id)
		od := set.Sig[id].Recv[0].Obs[Pseudorange]
		assert.InDelta(t, 1.0/od.MeasVar, W.At(i, i), 1e-12, "%s", id)
	}
}

func TestBuildResidualsErrors(t *testing.T) {
	t.Parallel()

	set := residualFixture(t, map[SatType]float64{"G03": 0.0})

	// No carrier observations in the fixture
	_, _, _, err := BuildResiduals(set, 0, Carrier)
	assert.Error(t, err)

	// Missing variance means the estimator was not run for the signal
	set.Sig[SatSigId{Sat: "G03", Freq: FreqL1}].Recv[0].Obs[Pseudorange].MeasVar = 0
	_, _, _, err = BuildResiduals(set, 0, Pseudorange)
	assert.Error(t, err)

	// Receiver index outside the set is just empty
	_, _, _, err = BuildResiduals(set, 3, Pseudorange)
	assert.Error(t, err)
}

func TestSolveLS(t *testing.T) {
	t.Parallel()

	// Overdetermined 3x2 system with exact solution x = (2, -1)
	G := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	dr := mat.NewVecDense(3, []float64{2, -1, 1})
	W := mat.NewDiagDense(3, []float64{1, 2, 4})

	dx, cov, err := SolveLS(G, dr, W)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, dx.AtVec(0), 1e-12)
	assert.InDelta(t, -1.0, dx.AtVec(1), 1e-12)

	r, c := cov.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Greater(t, cov.At(0, 0), 0.0)
	assert.Greater(t, cov.At(1, 1), 0.0)
}

func TestSolveLSDimensionMismatch(t *testing.T) {
	t.Parallel()

	G := mat.NewDense(3, 2, nil)
	dr := mat.NewVecDense(2, nil)
	W := mat.NewDiagDense(3, []float64{1, 1, 1})

	_, _, err := SolveLS(G, dr, W)
	assert.Error(t, err)
}
