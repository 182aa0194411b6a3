package changes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianpay/sitescan/internal/model"
)

func snap(fps map[model.PageType]string, signals model.DerivedSignals) *model.SiteSnapshot {
	return &model.SiteSnapshot{
		URL:          "https://acme.example/",
		Fingerprints: fps,
		Signals:      signals,
	}
}

func TestDetect_NoPriorIsBaseline(t *testing.T) {
	set := Detect(nil, snap(map[model.PageType]string{model.PageHome: "a"}, model.DerivedSignals{}))
	assert.True(t, set.Baseline)
	assert.Empty(t, set.Changes)
}

func TestDetect_SelfDiffIsEmpty(t *testing.T) {
	s := snap(map[model.PageType]string{
		model.PageHome:    "a",
		model.PagePrivacy: "b",
	}, model.DerivedSignals{PricingModel: "subscription", ProductCount: 4})

	set := Detect(s, s)
	assert.False(t, set.Baseline)
	assert.Empty(t, set.Changes)
}

func TestDetect_PolicyChangeIsCritical(t *testing.T) {
	prior := snap(map[model.PageType]string{model.PagePrivacy: "a"}, model.DerivedSignals{})
	current := snap(map[model.PageType]string{model.PagePrivacy: "b"}, model.DerivedSignals{})

	set := Detect(prior, current)

	require.Len(t, set.Changes, 1)
	c := set.Changes[0]
	assert.Equal(t, model.ChangeContent, c.Type)
	assert.Equal(t, model.SeverityCritical, c.Severity)
	assert.Equal(t, model.PagePrivacy, c.PageType)
}

func TestDetect_HomeChangeIsModerateWithSimilarity(t *testing.T) {
	prior := snap(map[model.PageType]string{model.PageHome: "a"},
		model.DerivedSignals{Summary: strings.Repeat("we sell fine widgets ", 5)})
	current := snap(map[model.PageType]string{model.PageHome: "b"},
		model.DerivedSignals{Summary: strings.Repeat("we sell fine widgets ", 5) + "and now gadgets"})

	set := Detect(prior, current)

	require.Len(t, set.Changes, 1)
	c := set.Changes[0]
	assert.Equal(t, model.SeverityModerate, c.Severity)
	assert.Contains(t, c.Detail, "similarity")
}

func TestDetect_OtherPageChangeIsInfo(t *testing.T) {
	prior := snap(map[model.PageType]string{model.PageFAQ: "a"}, model.DerivedSignals{})
	current := snap(map[model.PageType]string{model.PageFAQ: "b"}, model.DerivedSignals{})

	set := Detect(prior, current)

	require.Len(t, set.Changes, 1)
	assert.Equal(t, model.SeverityInfo, set.Changes[0].Severity)
}

func TestDetect_PageOnlyInOneScanIsIgnored(t *testing.T) {
	prior := snap(map[model.PageType]string{model.PageHome: "a"}, model.DerivedSignals{})
	current := snap(map[model.PageType]string{
		model.PageHome:    "a",
		model.PagePricing: "new",
	}, model.DerivedSignals{})

	set := Detect(prior, current)
	assert.Empty(t, set.Changes)
}

func TestDetect_PricingPageTextChangeIsPricingChange(t *testing.T) {
	signals := model.DerivedSignals{PricingModel: "subscription"}
	prior := snap(map[model.PageType]string{model.PagePricing: "a"}, signals)
	current := snap(map[model.PageType]string{model.PagePricing: "b"}, signals)

	set := Detect(prior, current)

	require.Len(t, set.Changes, 1)
	c := set.Changes[0]
	assert.Equal(t, model.ChangePricing, c.Type)
	assert.Equal(t, model.SeverityCritical, c.Severity)
	assert.Equal(t, model.PagePricing, c.PageType)
}

func TestDetect_PricingModelChangeIsCritical(t *testing.T) {
	prior := snap(nil, model.DerivedSignals{PricingModel: "subscription"})
	current := snap(nil, model.DerivedSignals{PricingModel: "one_time"})

	set := Detect(prior, current)

	require.Len(t, set.Changes, 1)
	c := set.Changes[0]
	assert.Equal(t, model.ChangePricing, c.Type)
	assert.Equal(t, model.SeverityCritical, c.Severity)
}

func TestDetect_ProductCountSeverity(t *testing.T) {
	cases := []struct {
		before, after int
		want          model.Severity
	}{
		{10, 9, model.SeverityInfo},
		{10, 4, model.SeverityModerate},
		{10, 0, model.SeverityModerate},
		{0, 3, model.SeverityModerate},
	}
	for _, tc := range cases {
		prior := snap(nil, model.DerivedSignals{ProductCount: tc.before})
		current := snap(nil, model.DerivedSignals{ProductCount: tc.after})

		set := Detect(prior, current)
		require.Len(t, set.Changes, 1, "before=%d after=%d", tc.before, tc.after)
		assert.Equal(t, model.ChangeProduct, set.Changes[0].Type)
		assert.Equal(t, tc.want, set.Changes[0].Severity, "before=%d after=%d", tc.before, tc.after)
	}
}
