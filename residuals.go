// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.12.7
//

package gnssest

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// BuildResiduals assembles the residual vector and weight matrix of one
// observable for one receiver from an annotated observation set. The
// residual is measurement minus estimate, the weight is the inverse
// measurement variance. Signals without data for the receiver or the
// observable are skipped; the returned keys name the rows.
func BuildResiduals(set *ObsSet, recvIdx int, ot ObsType) (ids []SatSigId, dr *mat.VecDense, W *mat.DiagDense, err error) {
	res := make([]float64, 0, len(set.Sig))
	wgh := make([]float64, 0, len(set.Sig))

	for _, sigId := range set.SigIds() {
		sig := set.Sig[sigId]
		if recvIdx >= len(sig.Recv) || sig.Recv[recvIdx] == nil {
			continue
		}
		od, ok := sig.Recv[recvIdx].Obs[ot]
		if !ok {
			continue
		}
		if od.MeasVar <= 0 {
			return nil, nil, nil, fmt.Errorf("signal %s has no measurement variance, estimator not run?", sigId)
		}
		ids = append(ids, sigId)
		res = append(res, od.Meas-od.Est)
		wgh = append(wgh, 1.0/od.MeasVar)
	}

	if len(ids) == 0 {
		return nil, nil, nil, fmt.Errorf("no %s observations for receiver %d", ot, recvIdx)
	}
	return ids, mat.NewVecDense(len(res), res), mat.NewDiagDense(len(wgh), wgh), nil
}

// Solve the observation equation using weighted least squares
// - dx = (G^t W G)^-1 G^t W dr
// - Return the error covariance matrix (G^t W G)^-1 as cov
func SolveLS(G mat.Matrix, dr mat.Vector, W mat.Matrix) (dx mat.Vector, cov mat.Matrix, err error) {

	n1, m1 := G.Dims()
	n2, m2 := W.Dims()
	if n1 != n2 {
		return nil, nil, fmt.Errorf("invalid matrix size. G^T(%d x %d), W(%d x %d)", m1, n1, n2, m2)
	}
	l1 := dr.Len()
	if l1 != m2 {
		return nil, nil, fmt.Errorf("invalid matrix size. W(%d x %d), dr(%d x 1)", n2, m2, l1)
	}

	// A (G^t W G)
	var WG mat.Dense
	WG.Mul(W, G)
	var A mat.Dense
	A.Mul(G.T(), &WG)

	// b (G^t W dr)
	var GtW mat.Dense
	GtW.Mul(G.T(), W)
	var b mat.VecDense
	b.MulVec(&GtW, dr)

	// Solve for x (x = A^-1 b)
	var x mat.VecDense
	err = x.SolveVec(&A, &b)
	if err != nil {
		return nil, nil, err
	}
	dx = &x

	// Set (G^T W G)^-1 as the covariance matrix
	var c mat.Dense
	err = c.Inverse(&A)
	if err != nil {
		return nil, nil, err
	}
	cov = &c

	return
}
