package service

// Band is the quality category of a score. Bands are ordered low < medium < high.
type Band int

const (
	BandLow Band = iota
	BandMedium
	BandHigh
)

func (b Band) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandMedium:
		return "medium"
	}
	return "low"
}

func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Classify accepts any integer; values outside 0-100 use the same thresholds.
func Classify(score int) Band {
	switch {
	case score >= 80:
		return BandHigh
	case score >= 60:
		return BandMedium
	}
	return BandLow
}

// IsPublishReady uses its own threshold, independent of the bands:
// 71-79 is medium yet publish-ready.
func IsPublishReady(seoScore int) bool {
	return seoScore > 70
}
