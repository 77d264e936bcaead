package relation

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirror(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"45", "90"},
		{"05", "50"},
		{"123", "678"},
		{"999", "444"},
		{"0", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Mirror(tt.in))
		})
	}
}

func TestMirrorInvolution(t *testing.T) {
	for n := 0; n < 1000; n++ {
		for _, s := range []string{fmt.Sprintf("%d", n%10), fmt.Sprintf("%02d", n%100), fmt.Sprintf("%03d", n)} {
			require.Equal(t, s, Mirror(Mirror(s)), "mirror(mirror(%s))", s)
		}
	}
}

func TestCut(t *testing.T) {
	assert.Equal(t, "678", Cut("123"))
	assert.Equal(t, "567", Cut("210"))
	assert.Equal(t, "055", Cut("005"))
}

func TestReverseAndDigitSum(t *testing.T) {
	assert.Equal(t, "54", Reverse("45"))
	assert.Equal(t, "321", Reverse("123"))
	assert.Equal(t, 9, DigitSum("45"))
	assert.Equal(t, 6, DigitSum("123"))
	assert.Equal(t, 7, DigitSum("999"))
}

func TestTripleFamiliesPartition(t *testing.T) {
	seen := make(map[string]int)
	for key := 0; key < 10; key++ {
		family := TripleFamily(key)
		assert.Len(t, family, 100)
		for _, v := range family {
			assert.Equal(t, key, DigitSum(v))
			seen[v]++
		}
	}
	require.Len(t, seen, 1000)
	for v, n := range seen {
		assert.Equal(t, 1, n, "triple %s in more than one family", v)
	}
}

func TestPairFamilies(t *testing.T) {
	assert.Equal(t, []string{"09", "18", "27", "36", "45", "54", "63", "72", "81", "90"}, PairFamily(9))
	total := 0
	for key := 0; key < 10; key++ {
		total += len(PairFamily(key))
	}
	assert.Equal(t, 100, total)
}

func TestFamilyTablesAreCopies(t *testing.T) {
	family := PairFamily(1)
	family[0] = "xx"
	assert.NotEqual(t, "xx", PairFamily(1)[0])
}

func TestRelatedPairs(t *testing.T) {
	related := RelatedPairs("45")
	assert.Contains(t, related, "45")
	assert.Contains(t, related, "90")
	for _, member := range PairFamily(9) {
		assert.Contains(t, related, member)
	}
}

func TestRelatedPairsClosure(t *testing.T) {
	for n := 0; n < 100; n++ {
		p := fmt.Sprintf("%02d", n)
		related := RelatedPairs(p)
		for _, v := range related {
			assert.Subset(t, related, RelatedPairs(v), "closure of %s via %s", p, v)
		}
		assert.Equal(t, related, RelatedPairs(p))
	}
}

func TestRelatedTriplesClosure(t *testing.T) {
	related := make(map[string][]string, 1000)
	for n := 0; n < 1000; n++ {
		tr := fmt.Sprintf("%03d", n)
		related[tr] = RelatedTriples(tr)
	}

	for tr, group := range related {
		require.Len(t, group, 200, tr)
		require.Contains(t, group, tr)
		require.Contains(t, group, Mirror(tr))
		require.Contains(t, group, Cut(tr))
		// a closed group maps every member back onto itself
		for _, v := range group {
			require.True(t, slices.Equal(group, related[v]), "closure of %s via %s", tr, v)
		}
	}
}
