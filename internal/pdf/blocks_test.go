package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePageHTML = `<div id="page0">
<p style="top:72.5pt;left:108.0pt;line-height:30.0pt"><b><span style="font-family:Helvetica;font-size:28.0pt">LEADERSHIP MASTERCLASS</span></b></p>
<p style="top:120.0pt;left:108.0pt;line-height:14.0pt"><span style="font-family:Helvetica;font-size:11.0pt">Date: </span><span style="font-family:Helvetica;font-size:12.5pt">21 July 2025</span></p>
<p style="top:140.0pt;left:108.0pt;line-height:14.0pt"><span style="font-size:11.0pt">   </span></p>
<p style="top:160.0pt;left:108.0pt;line-height:14.0pt"><span style="font-size:11.0pt">Fee: RM 2,500 &amp; lunch</span></p>
</div>`

func TestParsePageHTML(t *testing.T) {
	blocks := parsePageHTML(samplePageHTML)
	require.Len(t, blocks, 3, "whitespace-only lines drop")

	title := blocks[0]
	assert.Equal(t, "LEADERSHIP MASTERCLASS", title.Text)
	assert.Equal(t, 72.5, title.Y0)
	assert.Equal(t, 108.0, title.X0)
	assert.Equal(t, 28.0, title.Size)
	assert.Greater(t, title.X1, title.X0)
	assert.Greater(t, title.Y1, title.Y0)

	date := blocks[1]
	assert.Equal(t, "Date: 21 July 2025", date.Text, "adjacent spans join with single spaces")
	assert.Equal(t, 12.5, date.Size, "line takes its largest span size")

	fee := blocks[2]
	assert.Equal(t, "Fee: RM 2,500 & lunch", fee.Text, "entities unescape")
}

func TestParsePageHTML_Empty(t *testing.T) {
	assert.Empty(t, parsePageHTML(""))
	assert.Empty(t, parsePageHTML("<div id=\"page0\"></div>"))
}

func TestParsePageHTML_MissingFontSizeDefaults(t *testing.T) {
	blocks := parsePageHTML(`<p style="top:10.0pt;left:20.0pt;">plain line</p>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, defaultFontSize, blocks[0].Size)
}

func TestMaxFontSize(t *testing.T) {
	assert.Equal(t, 14.0, maxFontSize(`<span style="font-size:9.0pt">a</span><span style="font-size:14.0pt">b</span>`))
	assert.Equal(t, defaultFontSize, maxFontSize("no styles"))
}
