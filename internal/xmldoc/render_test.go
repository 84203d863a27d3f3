package xmldoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	tree := NewElement("Message").Add(
		NewElement("Header").Add(
			TextElement("Collection", "CIN"),
			TextElement("Empty", ""),
		),
	)

	got := string(tree.Marshal())

	want := `<?xml version="1.0" encoding="UTF-8"?>
<Message>
  <Header>
    <Collection>CIN</Collection>
    <Empty></Empty>
  </Header>
</Message>
`
	assert.Equal(t, want, got)
}

func TestMarshalEscapesText(t *testing.T) {
	got := string(TextElement("Name", `O'Brien & <Co> "Ltd"`).Marshal())
	assert.Contains(t, got, "O&apos;Brien &amp; &lt;Co&gt; &quot;Ltd&quot;")
}

func TestMarshalRoundTripsThroughParse(t *testing.T) {
	tree := NewElement("Message").Add(
		NewElement("Children").Add(
			NewElement("Child").Add(TextElement("LAchildID", "A&B")),
			NewElement("Child").Add(TextElement("LAchildID", "C2")),
		),
	)

	doc, err := Parse(tree.Marshal())
	require.NoError(t, err)

	nodes, err := doc.Select("/Message/Children/Child/LAchildID")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	v, _ := nodes[0].Value(".")
	assert.Equal(t, "A&B", v)
}
