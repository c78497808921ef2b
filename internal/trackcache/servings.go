package trackcache

import (
	"encoding/json"
	"fmt"
)

type servingsResponse struct {
	Result []serving `json:"result"`
}

type serving struct {
	Track          servingTrack     `json:"track"`
	TrackVariation servingVariation `json:"trackVariation"`
}

type servingTrack struct {
	Name           string        `json:"name"`
	BeatsPerMinute *float64      `json:"beatsPerMinute"`
	ImageURL       string        `json:"imageUrl"`
	MentalState    *displayValue `json:"mentalState"`
	MobileActivity *displayValue `json:"mobileActivity"`
	Tags           []servingTag  `json:"tags"`
}

type servingVariation struct {
	URL               string   `json:"url"`
	NeuralEffectLevel *float64 `json:"neuralEffectLevel"`
	CDNURL            string   `json:"cdnUrl"`
}

type displayValue struct {
	DisplayValue string `json:"displayValue"`
}

type servingTag struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ParseServings decodes a servings API response body into a cache keyed by
// up to three filename derivations per track: the decoded variation URL,
// the raw variation URL when it differs from its decoded form, and the
// filename of the CDN URL. The CDN-derived key is only inserted when not
// already present, so the primary URL-derived key wins on collision.
func ParseServings(body []byte) (*Cache, error) {
	var resp servingsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse servings response: %w", err)
	}

	cache := New()
	for _, s := range resp.Result {
		meta := buildMetadata(s.Track, s.TrackVariation)

		if url := s.TrackVariation.URL; url != "" {
			decoded := DecodeEscapes(url)
			cache.tracks[decoded] = meta
			if url != decoded {
				cache.tracks[url] = meta
			}
		}
		if cdn := s.TrackVariation.CDNURL; cdn != "" {
			if filename := FilenameFromURL(cdn); filename != "" {
				decoded := DecodeEscapes(filename)
				if _, exists := cache.tracks[decoded]; !exists {
					cache.tracks[decoded] = meta
				}
			}
		}
	}
	return cache, nil
}

func buildMetadata(track servingTrack, variation servingVariation) Metadata {
	meta := Metadata{
		Name:              track.Name,
		ImageURL:          track.ImageURL,
		NeuralEffectLevel: variation.NeuralEffectLevel,
	}

	if variation.NeuralEffectLevel != nil {
		meta.NeuralEffect = EffectDisplay(*variation.NeuralEffectLevel)
	}
	if track.MentalState != nil {
		meta.MentalState = track.MentalState.DisplayValue
	}
	if track.BeatsPerMinute != nil {
		meta.BPM = int(*track.BeatsPerMinute)
	}

	for _, tag := range track.Tags {
		switch tag.Type {
		case "genre":
			if meta.Genre == "" && tag.Value != "Nature" {
				meta.Genre = tag.Value
			}
		case "activity":
			if meta.Activity == "" {
				meta.Activity = tag.Value
			}
		case "mood":
			meta.Moods = append(meta.Moods, tag.Value)
		case "instrument":
			meta.Instruments = append(meta.Instruments, tag.Value)
		}
	}
	if meta.Activity == "" && track.MobileActivity != nil {
		meta.Activity = track.MobileActivity.DisplayValue
	}
	return meta
}
