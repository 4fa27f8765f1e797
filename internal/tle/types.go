package tle

import (
	"encoding/json"
	"fmt"
)

// TLE is a single decoded two-line element set. Values are immutable once
// returned by Parse; re-parsing produces a new record.
type TLE struct {
	Name                       string         `json:"name"`
	SatelliteNumber            uint32         `json:"satellite_number"`
	Classification             Classification `json:"classification"`
	InternationalDesignator    string         `json:"international_designator"`
	Epoch                      string         `json:"epoch"`
	FirstDerivativeMeanMotion  float64        `json:"first_derivative_mean_motion"`
	SecondDerivativeMeanMotion float64        `json:"second_derivative_mean_motion"`
	DragTerm                   float64        `json:"drag_term"`
	EphemerisType              uint32         `json:"ephemeris_type"`
	ElementNumber              uint32         `json:"element_number"`
	Inclination                float64        `json:"inclination"`
	RightAscension             float64        `json:"right_ascension"`
	Eccentricity               float64        `json:"eccentricity"`
	ArgumentOfPerigee          float64        `json:"argument_of_perigee"`
	MeanAnomaly                float64        `json:"mean_anomaly"`
	MeanMotion                 float64        `json:"mean_motion"`
	RevolutionNumber           uint32         `json:"revolution_number"`
}

// Classification is the single-character security marker from line 1
// ('U' unclassified, 'C' classified, 'S' secret).
type Classification byte

func (c Classification) String() string {
	return string(rune(c))
}

// MarshalJSON encodes the classification as a one-character string.
func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts exactly one character.
func (c *Classification) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if len(s) != 1 {
		return fmt.Errorf("classification must be a single character, got %q", s)
	}
	*c = Classification(s[0])
	return nil
}

// Catalog is the result of reading a multi-record TLE stream.
type Catalog struct {
	Records  []TLE
	Rejected int
}
