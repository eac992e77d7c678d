package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertiesNameThenMethodLine(t *testing.T) {
	text := "Typical properties\n" +
		"Viscosity, mm2/s @ 100°C\n" +
		"ASTM D-445 17.5\n"
	rows := Properties(text)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Ordinal)
	assert.Equal(t, "Viscosity, mm2/s @ 100°C", rows[0].PropertyName)
	assert.Equal(t, "ASTM D-445", rows[0].TestMethod)
	assert.Equal(t, "17.5", rows[0].Value)
}

func TestPropertiesNameLineWithoutMethodEmitsNothing(t *testing.T) {
	text := "Typical properties\n" +
		"Density at 15°C\n" +
		"kg/m3 0.852\n"
	assert.Empty(t, Properties(text))
}

func TestPropertiesDiscardedCandidateLineIsRescanned(t *testing.T) {
	text := "Typical properties\n" +
		"Viscosity Index\n" +
		"Pour Point, °C\n" +
		"ASTM D-97 -39\n"
	rows := Properties(text)
	require.Len(t, rows, 1)
	// Viscosity Index had no method line; Pour Point was re-read as a name
	// line instead of being skipped.
	assert.Equal(t, "Pour Point, °C", rows[0].PropertyName)
	assert.Equal(t, "ASTM D-97", rows[0].TestMethod)
	assert.Equal(t, "-39", rows[0].Value)
}

func TestPropertiesOrdinalsAreDense(t *testing.T) {
	text := "Typical properties\n" +
		"Viscosity @ 100°C\n" +
		"ASTM D-445 17.5\n" +
		"Density at 15°C\n" +
		"no method here\n" +
		"Flash Point, °C\n" +
		"ASTM D-92 230\n"
	rows := Properties(text)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Ordinal)
	assert.Equal(t, 2, rows[1].Ordinal)
	assert.Equal(t, "Viscosity @ 100°C", rows[0].PropertyName)
	assert.Equal(t, "Flash Point, °C", rows[1].PropertyName)
}

func TestPropertiesLoosePassFallback(t *testing.T) {
	// No method tokens anywhere, so the pair scan yields nothing and the
	// label pass takes over.
	text := "Viscosity @ 40°C: 68.4\nPour Point: -33 °C\n"
	rows := Properties(text)
	require.Len(t, rows, 2)
	assert.Equal(t, "Viscosity @ 40°C", rows[0].PropertyName)
	assert.Equal(t, "68.4", rows[0].Value)
	assert.Empty(t, rows[0].TestMethod)
	assert.Equal(t, "Pour Point", rows[1].PropertyName)
	assert.Equal(t, "-33 °C", rows[1].Value)
	assert.Equal(t, 2, rows[1].Ordinal)
}

func TestPropertiesValueJoinsTextAroundMethodToken(t *testing.T) {
	text := "Typical properties\n" +
		"Flash Point, °C\n" +
		"230 ASTM D-92\n"
	rows := Properties(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "ASTM D-92", rows[0].TestMethod)
	assert.Equal(t, "230", rows[0].Value)
}
