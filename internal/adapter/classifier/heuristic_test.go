package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(c *HeuristicClassifier, html string) []string {
	out, _ := c.ClassifyAndExtract(context.Background(), html)
	var n []string
	for _, e := range out.Entities {
		n = append(n, e.Name)
	}
	return n
}

func TestHeuristicCategories(t *testing.T) {
	c := NewHeuristicClassifier(nil, 0)
	out, err := c.ClassifyAndExtract(context.Background(),
		"<h1>Madeira</h1><p>Our week on Madeira, hiking the levadas and staying at a small hotel.</p>")
	require.NoError(t, err)
	assert.Equal(t, []string{"/Travel/Tourist Destinations", "/Travel/Hotels & Accommodations"}, out.Categories)
}

func TestHeuristicEntities(t *testing.T) {
	c := NewHeuristicClassifier(nil, 0)
	out, err := c.ClassifyAndExtract(context.Background(),
		"<p>We flew to Funchal. The old town of Funchal faces the sea.</p><p>Next stop was Porto Moniz.</p>")
	require.NoError(t, err)
	require.NotEmpty(t, out.Entities)

	assert.Equal(t, "Funchal", out.Entities[0].Name, "most frequent first")
	assert.InDelta(t, 2.0/3.0, out.Entities[0].Salience, 1e-9)
	assert.Contains(t, names(c, "<p>Next stop was Porto Moniz.</p>"), "Porto Moniz")
	for _, e := range out.Entities {
		assert.NotEqual(t, "The", e.Name)
		assert.NotEqual(t, "We", e.Name)
		assert.Equal(t, HeuristicKind, e.Kind)
	}
}

func TestHeuristicMaxEntities(t *testing.T) {
	c := NewHeuristicClassifier(nil, 1)
	assert.Len(t, names(c, "<p>Lisbon and Porto and Braga.</p>"), 1)
}

func TestHeuristicEmptyInput(t *testing.T) {
	c := NewHeuristicClassifier(nil, 0)
	out, err := c.ClassifyAndExtract(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, out.Categories)
	assert.Empty(t, out.Entities)

	out, err = c.ClassifyAndExtract(context.Background(), "<p>   </p>")
	require.NoError(t, err)
	assert.Empty(t, out.Entities)
}

func TestHeuristicCustomRules(t *testing.T) {
	c := NewHeuristicClassifier([]CategoryRule{{Category: "/Pets", Keywords: []string{"dog"}}}, 0)
	out, err := c.ClassifyAndExtract(context.Background(), "<p>Walking the dogs.</p>")
	require.NoError(t, err)
	assert.Equal(t, []string{"/Pets"}, out.Categories)
}
