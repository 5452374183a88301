package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptGate_ThaiRange(t *testing.T) {
	gate, err := NewScriptGate("th", "")
	require.NoError(t, err)

	assert.True(t, gate.ShouldTranslate("สวัสดีครับ"))
	assert.True(t, gate.ShouldTranslate("Invoice สวัสดี 2024"))
	assert.False(t, gate.ShouldTranslate("Hello"))
	assert.False(t, gate.ShouldTranslate("12345"))
	assert.False(t, gate.ShouldTranslate(""))
}

func TestScriptGate_ForcedScriptName(t *testing.T) {
	gate, err := NewScriptGate("ru", "Cyrillic")
	require.NoError(t, err)

	assert.True(t, gate.ShouldTranslate("Привет"))
	assert.False(t, gate.ShouldTranslate("Hello"))
}

func TestScriptGate_UnknownScriptRejected(t *testing.T) {
	_, err := NewScriptGate("th", "Klingon")
	require.Error(t, err)
}

func TestScriptGate_DetectionFallback(t *testing.T) {
	// Japanese has no dedicated entry in the script table, so the gate
	// falls back to language detection.
	gate, err := NewScriptGate("ja", "")
	require.NoError(t, err)

	assert.True(t, gate.ShouldTranslate("これはテストです。ありがとうございます。"))
	assert.False(t, gate.ShouldTranslate("สวัสดีครับ ยินดีต้อนรับ"))
}
