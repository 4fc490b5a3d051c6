package sharecard

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvite(t *testing.T) {
	inv, err := NewInvite("https://globetrotter.example/", "ada lovelace", 5)
	require.NoError(t, err)

	assert.Equal(t, "https://globetrotter.example/play?invitedBy=ada+lovelace&score=5", inv.URL)
	assert.Equal(t, "https://globetrotter.example/api/share?score=5&username=ada+lovelace", inv.ImageURL)
	assert.Equal(t, "Join me on Globetrotter! I scored 5. Beat my score: "+inv.URL, inv.Text)

	wa, err := url.Parse(inv.WhatsAppURL)
	require.NoError(t, err)
	assert.Equal(t, "api.whatsapp.com", wa.Host)
	assert.Equal(t, inv.Text, wa.Query().Get("text"))
}

func TestNewInvite_Defaults(t *testing.T) {
	inv, err := NewInvite("http://localhost:3000", "", -3)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/play?invitedBy=Player&score=0", inv.URL)
}

func TestNewInvite_RelativeBase(t *testing.T) {
	_, err := NewInvite("/just/a/path", "ada", 1)
	assert.Error(t, err)
}
