package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductNameFromBrandHeading(t *testing.T) {
	text := "Product Data Sheet\nValvoline SynPower ENV C2 5W-30\nFully synthetic engine oil\n"
	assert.Equal(t, "Valvoline SynPower ENV C2 5W-30", ProductName(text, "ignored title", "ignored.pdf"))
}

func TestProductNameHeadingIsCaseInsensitive(t *testing.T) {
	text := "VALVOLINE HD Synthetic Diesel\nbody"
	assert.Equal(t, "VALVOLINE HD Synthetic Diesel", ProductName(text, "", "x.pdf"))
}

func TestProductNameFallsBackToMetadataTitle(t *testing.T) {
	text := "Generic heading\nno brand line anywhere\n"
	assert.Equal(t, "SynPower ENV C2 5W-30", ProductName(text, "  SynPower\tENV  C2 5W-30 ", "x.pdf"))
}

func TestProductNameFallsBackToFilenameStem(t *testing.T) {
	got := ProductName("", "", "/data/EUR_Val_SynENVC2_5W30_MO_EN.pdf")
	assert.Equal(t, "EUR_Val_SynENVC2_5W30_MO_EN", got)
}

func TestProductNameIgnoresBrandLineBeyondHeadWindow(t *testing.T) {
	text := strings.Repeat("filler line\n", 300) + "Valvoline buried deep\n"
	assert.Equal(t, "fallback", ProductName(text, "fallback", "x.pdf"))
}
