package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "+5211234567890", FormatNumber("5211234567890@s.whatsapp.net"))
	assert.Equal(t, "+5211234567890", FormatNumber("5211234567890"))
	assert.Equal(t, "Desconocido", FormatNumber(""))
}

func TestKindDetection(t *testing.T) {
	assert.True(t, IsGroup("120363041234567890@g.us"))
	assert.False(t, IsGroup("5211234567890@s.whatsapp.net"))
	assert.Equal(t, SenderGroup, KindOf("120363041234567890@g.us"))
	assert.Equal(t, SenderUser, KindOf("5211234567890"))
}

func TestParseSenderKind(t *testing.T) {
	k, ok := ParseSenderKind("user")
	assert.True(t, ok)
	assert.Equal(t, SenderUser, k)

	_, ok = ParseSenderKind("channel")
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Grupo: +120363041234567890", DisplayName("120363041234567890@g.us"))
	assert.Equal(t, "+5211234567890", DisplayName("5211234567890"))
}
