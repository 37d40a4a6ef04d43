package model

// EducationRecord is one county's educational attainment figures.
type EducationRecord struct {
	FIPS              int     `json:"fips"`
	State             string  `json:"state"`
	AreaName          string  `json:"area_name"`
	BachelorsOrHigher float64 `json:"bachelorsOrHigher"` // percent, 0-100
}

// EducationIndex maps a county FIPS code to its record.
type EducationIndex map[int]EducationRecord

// NewEducationIndex builds an index over records. When a FIPS code repeats,
// the first record wins.
func NewEducationIndex(records []EducationRecord) EducationIndex {
	idx := make(EducationIndex, len(records))
	for _, r := range records {
		if _, ok := idx[r.FIPS]; ok {
			continue
		}
		idx[r.FIPS] = r
	}
	return idx
}

// Lookup returns the record for fips, if any.
func (idx EducationIndex) Lookup(fips int) (EducationRecord, bool) {
	r, ok := idx[fips]
	return r, ok
}

// BachelorsValues returns the bachelorsOrHigher value of every record, in order.
func BachelorsValues(records []EducationRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.BachelorsOrHigher
	}
	return out
}
