package tle

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	grusName  = "GRUS-1A"
	grusLine1 = "1 43890U 18111Q   20044.88470557  .00000320  00000-0  36258-4 0  9993"
	grusLine2 = "2 43890  97.7009 312.6237 0003899   7.8254 352.3026 14.92889838 61757"

	issName  = "ISS (ZARYA)"
	issLine1 = "1 25544U 98067A   20045.18587073  .00000950  00000-0  25302-4 0  9990"
	issLine2 = "2 25544  51.6443 242.0161 0004885 264.6060 207.3845 15.49165514212791"

	vanguardLine1 = "1 00005U 58002B   00179.78495062  .00000023  00000-0  28098-4 0  4753"
	vanguardLine2 = "2 00005  34.2682 348.7242 1849677 331.7664  19.3264 10.82419157413667"
)

func block(name, line1, line2 string) string {
	return name + "\n" + line1 + "\n" + line2
}

func TestParseGrus(t *testing.T) {
	tle, err := Parse(block(grusName, grusLine1, grusLine2))
	require.NoError(t, err)

	assert.Equal(t, "GRUS-1A", tle.Name)
	assert.Equal(t, uint32(43890), tle.SatelliteNumber)
	assert.Equal(t, Classification('U'), tle.Classification)
	assert.Equal(t, "18111Q", tle.InternationalDesignator)
	assert.Equal(t, "20044.88470557", tle.Epoch)
	assert.Equal(t, 0.00000320, tle.FirstDerivativeMeanMotion)
	assert.Equal(t, 0.0, tle.SecondDerivativeMeanMotion)
	assert.Equal(t, 0.36258e-4, tle.DragTerm)
	assert.Equal(t, uint32(0), tle.EphemerisType)
	assert.Equal(t, uint32(999), tle.ElementNumber)

	assert.Equal(t, 97.7009, tle.Inclination)
	assert.Equal(t, 312.6237, tle.RightAscension)
	assert.Equal(t, 0.0003899, tle.Eccentricity)
	assert.Equal(t, 7.8254, tle.ArgumentOfPerigee)
	assert.Equal(t, 352.3026, tle.MeanAnomaly)
	assert.Equal(t, 14.92889838, tle.MeanMotion)
	assert.Equal(t, uint32(6175), tle.RevolutionNumber)
}

func TestParseISS(t *testing.T) {
	want := TLE{
		Name:                       "ISS (ZARYA)",
		SatelliteNumber:            25544,
		Classification:             'U',
		InternationalDesignator:    "98067A",
		Epoch:                      "20045.18587073",
		FirstDerivativeMeanMotion:  0.00000950,
		SecondDerivativeMeanMotion: 0.0,
		DragTerm:                   0.25302e-4,
		EphemerisType:              0,
		ElementNumber:              999,
		Inclination:                51.6443,
		RightAscension:             242.0161,
		Eccentricity:               0.0004885,
		ArgumentOfPerigee:          264.6060,
		MeanAnomaly:                207.3845,
		MeanMotion:                 15.49165514,
		RevolutionNumber:           21279,
	}

	got, err := Parse(block(issName, issLine1, issLine2) + "\n")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// Mean motion and revolution number are split at a fixed column, so a
// five-digit revolution number runs straight into the mean motion.
func TestParseFixedRevolutionBoundary(t *testing.T) {
	tle, err := ParseLines("VANGUARD 1", vanguardLine1, vanguardLine2)
	require.NoError(t, err)

	assert.Equal(t, uint32(5), tle.SatelliteNumber)
	assert.Equal(t, uint32(475), tle.ElementNumber)
	assert.Equal(t, 0.1849677, tle.Eccentricity)
	assert.Equal(t, 10.82419157, tle.MeanMotion)
	assert.Equal(t, uint32(41366), tle.RevolutionNumber)

	padded := "2 25544  51.6400 100.0000 0001000   0.0000   0.0000 15.50000000    09"
	tle, err = ParseLines("", issLine1, padded)
	require.NoError(t, err)
	assert.Equal(t, 15.5, tle.MeanMotion)
	assert.Equal(t, uint32(0), tle.RevolutionNumber)
	assert.Equal(t, 0.0, tle.ArgumentOfPerigee)
}

func TestParseNegativeDragTerm(t *testing.T) {
	line1 := issLine1[:53] + "-11606-4" + issLine1[61:]
	tle, err := ParseLines(issName, line1, issLine2)
	require.NoError(t, err)
	assert.Equal(t, -0.11606e-4, tle.DragTerm)
}

func TestParseTrimsWhitespace(t *testing.T) {
	line1 := "1     5U 58002B   00179.78495062  .00000023  00000-0  28098-4 0  4753"
	name := "  VANGUARD 1   \r"

	tle, err := Parse(block(name, line1+"\r", vanguardLine2+"\r"))
	require.NoError(t, err)
	assert.Equal(t, "VANGUARD 1", tle.Name)
	assert.Equal(t, uint32(5), tle.SatelliteNumber)
	assert.Equal(t, "58002B", tle.InternationalDesignator)
}

func TestParseIdempotent(t *testing.T) {
	raw := block(grusName, grusLine1, grusLine2)
	a, err := Parse(raw)
	require.NoError(t, err)
	b, err := Parse(raw)
	require.NoError(t, err)
	assert.True(t, a == b, "records from identical input must be equal")
}

func TestParseDoesNotCrossCheckSatelliteNumber(t *testing.T) {
	line2 := "2 99999" + grusLine2[7:]
	tle, err := ParseLines(grusName, grusLine1, line2)
	require.NoError(t, err)
	assert.Equal(t, uint32(43890), tle.SatelliteNumber)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		line  int
		field string
	}{
		{
			name:  "no line breaks",
			raw:   grusLine1,
			line:  0,
			field: "name line",
		},
		{
			name:  "missing second newline",
			raw:   grusName + "\n" + grusLine1 + grusLine2,
			line:  0,
			field: "line 1",
		},
		{
			name:  "line 1 tag",
			raw:   block(grusName, "3"+grusLine1[1:], grusLine2),
			line:  1,
			field: "line_number",
		},
		{
			name:  "line 2 tag",
			raw:   block(grusName, grusLine1, "1"+grusLine2[1:]),
			line:  2,
			field: "line_number",
		},
		{
			name:  "non-numeric satellite number",
			raw:   block(grusName, "1 43A90"+grusLine1[7:], grusLine2),
			line:  1,
			field: "satellite_number",
		},
		{
			name:  "missing delimiter",
			raw:   block(grusName, grusLine1[:8]+"X"+grusLine1[9:], grusLine2),
			line:  1,
			field: "delimiter",
		},
		{
			name:  "drag term without exponent separator",
			raw:   block(grusName, grusLine1[:53]+" 36258+4"+grusLine1[61:], grusLine2),
			line:  1,
			field: "drag_term",
		},
		{
			name:  "short line 1",
			raw:   block(grusName, grusLine1[:60], grusLine2),
			line:  1,
			field: "drag_term",
		},
		{
			name:  "line 1 without checksum",
			raw:   block(grusName, grusLine1[:68], grusLine2),
			line:  1,
			field: "checksum",
		},
		{
			name:  "eccentricity with sign",
			raw:   block(grusName, grusLine1, grusLine2[:26]+"-003899"+grusLine2[33:]),
			line:  2,
			field: "eccentricity",
		},
		{
			name:  "non-numeric mean motion",
			raw:   block(grusName, grusLine1, grusLine2[:52]+"14.9288983x"+grusLine2[63:]),
			line:  2,
			field: "mean_motion",
		},
		{
			name:  "infinite inclination",
			raw:   block(grusName, grusLine1, grusLine2[:8]+"     Inf"+grusLine2[16:]),
			line:  2,
			field: "inclination",
		},
		{
			name:  "short line 2",
			raw:   block(grusName, grusLine1, grusLine2[:64]),
			line:  2,
			field: "revolution_number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			require.Error(t, err)
			assert.Equal(t, TLE{}, got)
			assert.ErrorIs(t, err, ErrFormatInvalid)
			assert.True(t, strings.HasPrefix(err.Error(), "Invalid TLE Format"), err.Error())

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.line, fe.Line)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestClassificationJSON(t *testing.T) {
	b, err := Classification('S').MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"S"`, string(b))

	var c Classification
	require.NoError(t, c.UnmarshalJSON([]byte(`"C"`)))
	assert.Equal(t, Classification('C'), c)
	assert.Error(t, c.UnmarshalJSON([]byte(`"CS"`)))
}
