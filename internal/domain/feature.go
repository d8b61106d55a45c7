package domain

import "strings"

// FeatureCategory is a closed set of rendering hints for amenity/include
// labels. The category is decided once when the catalog is loaded, so
// consumers never inspect label text at render time.
type FeatureCategory string

const (
	FeatureWifi      FeatureCategory = "wifi"
	FeatureFood      FeatureCategory = "food"
	FeatureTransport FeatureCategory = "transport"
	FeatureLodging   FeatureCategory = "lodging"
	FeatureGuide     FeatureCategory = "guide"
	FeatureActivity  FeatureCategory = "activity"
	FeatureGear      FeatureCategory = "gear"
	FeatureGeneral   FeatureCategory = "general"
)

type Feature struct {
	Label    string          `json:"label"`
	Category FeatureCategory `json:"category"`
}

// keyword -> category, checked in order. First match wins.
var featureKeywords = []struct {
	kw  string
	cat FeatureCategory
}{
	{"wifi", FeatureWifi},
	{"internet", FeatureWifi},
	{"breakfast", FeatureFood},
	{"meal", FeatureFood},
	{"lunch", FeatureFood},
	{"dinner", FeatureFood},
	{"kitchen", FeatureFood},
	{"food", FeatureFood},
	{"transport", FeatureTransport},
	{"transfer", FeatureTransport},
	{"pickup", FeatureTransport},
	{"horse", FeatureTransport},
	{"accommodation", FeatureLodging},
	{"yurt", FeatureLodging},
	{"camping", FeatureLodging},
	{"tent", FeatureLodging},
	{"locker", FeatureLodging},
	{"laundry", FeatureLodging},
	{"guide", FeatureGuide},
	{"instructor", FeatureGuide},
	{"hike", FeatureActivity},
	{"hiking", FeatureActivity},
	{"trek", FeatureActivity},
	{"ski", FeatureActivity},
	{"sauna", FeatureActivity},
	{"terrace", FeatureActivity},
	{"gear", FeatureGear},
	{"equipment", FeatureGear},
	{"rental", FeatureGear},
}

// ClassifyFeature maps a raw label to a Feature with its category resolved.
func ClassifyFeature(label string) Feature {
	low := strings.ToLower(label)
	for _, e := range featureKeywords {
		if strings.Contains(low, e.kw) {
			return Feature{Label: label, Category: e.cat}
		}
	}
	return Feature{Label: label, Category: FeatureGeneral}
}

func ClassifyFeatures(labels []string) []Feature {
	if len(labels) == 0 {
		return nil
	}
	out := make([]Feature, len(labels))
	for i, l := range labels {
		out[i] = ClassifyFeature(l)
	}
	return out
}
