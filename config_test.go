// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.12.21
//

package gnssest

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelNameParsing(t *testing.T) {
	t.Parallel()

	var iono IonoModel
	require.NoError(t, iono.Set("klobuchar"))
	assert.Equal(t, IonoKlobuchar, iono)
	assert.Equal(t, "klobuchar", iono.String())
	assert.Error(t, iono.Set("ionex"))

	var tropo TropoModel
	require.NoError(t, tropo.Set("saastamoinen"))
	assert.Equal(t, TropoSaastamoinen, tropo)
	assert.Error(t, tropo.Set("gpt2"))

	var mf TropoMapFunc
	require.NoError(t, mf.Set("niell"))
	assert.Equal(t, MapNiell, mf)
	assert.Error(t, mf.Set("vmf1"))

	var wf WeightFunc
	require.NoError(t, wf.Set("cn0"))
	assert.Equal(t, WeightCn0, wf)
	assert.Error(t, wf.Set("snr"))

	var mode DiffMode
	require.NoError(t, mode.Set("double"))
	assert.Equal(t, DoubleDifference, mode)
	assert.Error(t, mode.Set("triple"))
}

// Unknown names in a configuration file fail at load time
func TestEstimatorOptLoad(t *testing.T) {
	t.Parallel()

	opt := NewEstimatorOpt()
	require.NoError(t, json.Unmarshal([]byte(`{
		"ionosphereModel": "none",
		"troposphereModels": {"model": "saastamoinen", "zhdMappingFunction": "niell", "zwdMappingFunction": "cosecant"},
		"gnssMeasurementError": {"weightingFunction": "cn0", "codeStdDev": 0.5}
	}`), opt))
	assert.Equal(t, IonoNone, opt.IonosphereModel)
	assert.Equal(t, MapCosecant, opt.TroposphereModels.ZwdMap)
	assert.Equal(t, WeightCn0, opt.GnssMeasurementError.Weight)
	assert.Equal(t, 0.5, opt.GnssMeasurementError.CodeStd)

	assert.Error(t, json.Unmarshal([]byte(`{"ionosphereModel": "ionex"}`), NewEstimatorOpt()))
	assert.Error(t, json.Unmarshal([]byte(`{"troposphereModels": {"model": "gpt2"}}`), NewEstimatorOpt()))
}

func TestEstimatorOptRoundTrip(t *testing.T) {
	t.Parallel()

	opt := NewEstimatorOpt()
	opt.IonosphereModel = IonoNone
	opt.TroposphereModels.ZhdMap = MapCosecant
	opt.GnssMeasurementError.Weight = WeightCn0

	buf, err := json.Marshal(opt)
	require.NoError(t, err)

	got := NewEstimatorOpt()
	require.NoError(t, json.Unmarshal(buf, got))
	if diff := cmp.Diff(opt, got); diff != "" {
		t.Errorf("options changed across the round trip (-want +got):\n%s", diff)
	}
}

func TestNewEstimatorCopiesErrorModel(t *testing.T) {
	t.Parallel()

	opt := NewEstimatorOpt()
	est := opt.NewEstimator()
	require.NotNil(t, est.Err)

	// Later option edits must not leak into a built estimator
	opt.GnssMeasurementError.CodeStd = 99.0
	assert.NotEqual(t, 99.0, est.Err.CodeStd)
}
