package blending

import "sort"

// Source is one platform's raw dataset handed to the blender.
type Source struct {
	PlatformID string   `json:"platform_id"`
	Data       []RawRow `json:"data"`
}

// BlendSources harmonizes each non-empty source and merges the results
// into one canonical dataset ordered by (date, source_platform) ascending.
// Sources with no data are skipped. Every populated source's platform is
// validated before any row is processed, so an unknown platform surfaces
// as a configuration error rather than being discovered mid-blend.
func BlendSources(sources []Source) ([]CanonicalRow, error) {
	for _, src := range sources {
		if len(src.Data) == 0 {
			continue
		}
		if _, err := MappingFor(src.PlatformID); err != nil {
			return nil, err
		}
	}

	var blended []CanonicalRow
	for _, src := range sources {
		if len(src.Data) == 0 {
			continue
		}
		rows, err := HarmonizeDataset(src.Data, src.PlatformID)
		if err != nil {
			return nil, err
		}
		blended = append(blended, rows...)
	}

	// YYYY-MM-DD sorts correctly as a string; platform is the tie-break.
	// Stability preserves input order for fully equal keys.
	sort.SliceStable(blended, func(i, j int) bool {
		di, dj := Dimension(blended[i], FieldDate), Dimension(blended[j], FieldDate)
		if di != dj {
			return di < dj
		}
		return Dimension(blended[i], FieldSourcePlatform) < Dimension(blended[j], FieldSourcePlatform)
	})

	if blended == nil {
		blended = []CanonicalRow{}
	}
	return blended, nil
}
