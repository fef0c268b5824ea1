package intake

// Policy decides what happens to a batch that does not fit the gallery
type Policy string

const (
	// PolicyRejectAll drops the whole batch
	PolicyRejectAll Policy = "reject-all"
	// PolicyTruncate keeps the leading files that fit
	PolicyTruncate Policy = "truncate"
)

// Config controls one gallery
type Config struct {
	MaxFiles      int
	Policy        Policy
	ExtractGPS    bool
	CameraEnabled bool
	// MaxFileSize rejects larger files at intake when positive
	MaxFileSize int64
	// Workers bounds concurrent preview and GPS work; 0 means 4
	Workers int
}

// StrictPreset rejects over-capacity batches and offers camera and GPS
func StrictPreset(maxFiles int) Config {
	return Config{
		MaxFiles:      maxFiles,
		Policy:        PolicyRejectAll,
		ExtractGPS:    true,
		CameraEnabled: true,
	}
}

// SmartPreset accepts what fits and warns about the rest
func SmartPreset(maxFiles int) Config {
	return Config{
		MaxFiles:      maxFiles,
		Policy:        PolicyTruncate,
		ExtractGPS:    true,
		CameraEnabled: true,
	}
}

// BasicPreset is a plain uploader without camera or GPS extraction
func BasicPreset(maxFiles int) Config {
	return Config{
		MaxFiles: maxFiles,
		Policy:   PolicyRejectAll,
	}
}

// ParsePolicy accepts the config spelling of a policy
func ParsePolicy(s string) (Policy, bool) {
	switch Policy(s) {
	case PolicyRejectAll, PolicyTruncate:
		return Policy(s), true
	}
	return "", false
}
