package i18n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestRender(t *testing.T) {
	table := Default()

	en := table.Render("en", SlotAskParty, "Priya")
	assert.Contains(t, en, "Priya")
	assert.Contains(t, en, "How many guests")

	ta := table.Render("ta", SlotAskParty, "Priya")
	assert.Contains(t, ta, "Priya")
	assert.NotEqual(t, en, ta)
}

func TestRenderFallsBackToEnglish(t *testing.T) {
	table := Default()
	got := table.Render("fr", SlotCancelled)
	assert.Equal(t, table.Render("en", SlotCancelled), got)
}

func TestValidateDetectsMissingSlot(t *testing.T) {
	table := Default()
	broken := map[Slot]string{}
	for k, v := range table.templates["ta"] {
		broken[k] = v
	}
	delete(broken, SlotSummary)
	table.templates["ta"] = broken

	err := table.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(SlotSummary))
}

func TestValidateDetectsParameterMismatch(t *testing.T) {
	table := Default()
	broken := map[Slot]string{}
	for k, v := range table.templates["ta"] {
		broken[k] = v
	}
	broken[SlotAskParty] = "no placeholder here"
	table.templates["ta"] = broken

	err := table.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parameters")
}

func TestCountVerbs(t *testing.T) {
	assert.Equal(t, 0, countVerbs("plain text"))
	assert.Equal(t, 2, countVerbs("%s costs %d"))
	assert.Equal(t, 1, countVerbs("100%% of %d"))
}

func TestEveryLanguageRendersEverySlot(t *testing.T) {
	table := Default()
	for _, lang := range table.Languages() {
		for _, slot := range allSlots {
			tmpl := table.templates[lang][slot]
			require.NotEmpty(t, tmpl, "language %s slot %s", lang, slot)
			assert.False(t, strings.Contains(tmpl, "%!"), "language %s slot %s", lang, slot)
		}
	}
}
