// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.1.4
//

package gnssest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSatSigIdValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, SatSigId{Sat: "G05", Freq: FreqL1}.IsValid())
	assert.True(t, SatSigId{Sat: "J01", Freq: FreqL2}.IsValid())
	assert.True(t, SatSigId{Sat: "E11", Freq: FreqE5a}.IsValid())
	assert.True(t, SatSigId{Sat: "R09", Freq: FreqG1}.IsValid())
	assert.True(t, SatSigId{Sat: "C08", Freq: FreqB1}.IsValid())

	// Bands not transmitted by the satellite's system
	assert.False(t, SatSigId{Sat: "G05", Freq: FreqE1}.IsValid())
	assert.False(t, SatSigId{Sat: "R09", Freq: FreqL1}.IsValid())
	assert.False(t, SatSigId{Sat: "S35", Freq: FreqL2}.IsValid())

	// Unknown system letter
	assert.False(t, SatSigId{Sat: "X01", Freq: FreqL1}.IsValid())
}

func TestSatSigIdString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "L1-G05", SatSigId{Sat: "G05", Freq: FreqL1}.String())
	assert.Equal(t, "E5a-E11", SatSigId{Sat: "E11", Freq: FreqE5a}.String())
}
