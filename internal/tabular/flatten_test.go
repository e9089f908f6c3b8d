package tabular

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenNil(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}

func TestFlattenScalar(t *testing.T) {
	rows := Flatten("hello")
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"value": "hello"}, rows[0])

	rows = Flatten(float64(42))
	require.Len(t, rows, 1)
	assert.Equal(t, "42", rows[0]["value"])
}

func TestFlattenSequenceOfMappings(t *testing.T) {
	rows := Flatten([]interface{}{
		map[string]interface{}{"display_name": "Term A", "status": "ACTIVE"},
		map[string]interface{}{"display_name": "Term B", "status": "DRAFT"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "Term A", rows[0]["display_name"])
	assert.Equal(t, "DRAFT", rows[1]["status"])
}

func TestFlattenSequenceOfScalars(t *testing.T) {
	rows := Flatten([]interface{}{"a", float64(2)})
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"value": "a"}, rows[0])
	assert.Equal(t, Row{"value": "2"}, rows[1])
}

func TestFlattenUnwrapsEnvelope(t *testing.T) {
	for _, key := range []string{"elements", "items", "results"} {
		rows := Flatten(map[string]interface{}{
			"class": "SomeResponse",
			key:     []interface{}{map[string]interface{}{"name": "x"}},
		})
		require.Len(t, rows, 1, "envelope key %s", key)
		assert.Equal(t, "x", rows[0]["name"], "envelope key %s", key)
	}

	// A nil envelope payload is an empty result set.
	rows := Flatten(map[string]interface{}{"elements": nil})
	assert.Empty(t, rows)
}

func TestFlattenEnvelopeUnwrapIsSingleLevel(t *testing.T) {
	// The inner "elements" belongs to the element, not to an envelope.
	rows := Flatten(map[string]interface{}{
		"elements": []interface{}{
			map[string]interface{}{"elements": []interface{}{"a", "b"}},
		},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "a, b", rows[0]["elements"])
}

func TestFlattenPlainMappingIsOneRow(t *testing.T) {
	rows := Flatten(map[string]interface{}{"display_name": "Solo", "guid": "123"})
	require.Len(t, rows, 1)
	assert.Equal(t, Row{"display_name": "Solo", "guid": "123"}, rows[0])
}

func TestFlattenNestedMappingsUseDottedKeys(t *testing.T) {
	rows := Flatten([]interface{}{
		map[string]interface{}{
			"properties": map[string]interface{}{
				"displayName": "Clinical Trials",
				"header":      map[string]interface{}{"guid": "abc-123"},
			},
			"status": "ACTIVE",
		},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "Clinical Trials", rows[0]["properties.displayName"])
	assert.Equal(t, "abc-123", rows[0]["properties.header.guid"])
	assert.Equal(t, "ACTIVE", rows[0]["status"])
}

func TestFlattenNestedSequences(t *testing.T) {
	rows := Flatten([]interface{}{
		map[string]interface{}{
			"empty":       []interface{}{},
			"few_scalars": []interface{}{"a", "b", "c"},
			"many_scalars": []interface{}{
				"a", "b", "c", "d", "e",
			},
			"nil_value": nil,
		},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["empty"])
	assert.Equal(t, "a, b, c", rows[0]["few_scalars"])
	assert.Equal(t, "<5> items", rows[0]["many_scalars"])
	assert.Equal(t, "", rows[0]["nil_value"])
}

func TestMasterDetailSummarization(t *testing.T) {
	rows := Flatten([]interface{}{
		map[string]interface{}{
			"members": []interface{}{
				map[string]interface{}{"name": "Alpha"},
				map[string]interface{}{"displayName": "Beta"},
				map[string]interface{}{"qualifiedName": "Gamma::1"},
				map[string]interface{}{"guid": "guid-4"},
				map[string]interface{}{"role": "steward", "active": true},
			},
		},
	})
	require.Len(t, rows, 1)
	assert.Equal(t, "Alpha, Beta, Gamma::1, guid-4, steward", rows[0]["members"])
}

// For any over-long summary the stored value has exactly 120 characters and
// ends with "...".
func TestMasterDetailTruncationLaw(t *testing.T) {
	var members []interface{}
	for i := 0; i < 20; i++ {
		members = append(members, map[string]interface{}{
			"name": fmt.Sprintf("a-rather-long-member-name-%02d", i),
		})
	}
	rows := Flatten([]interface{}{map[string]interface{}{"members": members}})
	require.Len(t, rows, 1)

	summary := rows[0]["members"]
	assert.Len(t, summary, 120)
	assert.True(t, strings.HasSuffix(summary, "..."))
}

func TestMasterDetailTruncationOnRuneBoundary(t *testing.T) {
	// Place a multibyte rune right at the cut point: a 114-character ASCII
	// name followed by single-rune CJK names puts the first byte of "名" at
	// offset 117, where a byte-wise cut would split the rune.
	members := []interface{}{
		map[string]interface{}{"name": strings.Repeat("a", 114)},
	}
	for i := 0; i < 10; i++ {
		members = append(members, map[string]interface{}{"name": "名"})
	}
	rows := Flatten([]interface{}{map[string]interface{}{"members": members}})
	require.Len(t, rows, 1)

	summary := rows[0]["members"]
	assert.True(t, utf8.ValidString(summary))
	assert.Len(t, []rune(summary), 120)
	assert.True(t, strings.HasSuffix(summary, "..."))
}

func TestFlattenIdempotence(t *testing.T) {
	value := []interface{}{
		map[string]interface{}{
			"z": "last", "a": "first",
			"nested":  map[string]interface{}{"b": float64(2), "a": float64(1)},
			"members": []interface{}{map[string]interface{}{"name": "m1"}},
		},
		map[string]interface{}{"other": "row"},
	}

	first := Flatten(value)
	second := Flatten(value)
	assert.Equal(t, first, second)
	assert.Equal(t, Columns(first, DefaultColumnCap), Columns(second, DefaultColumnCap))
}

func TestColumnsFirstSeenOrderAndDedup(t *testing.T) {
	rows := []Row{
		{"b": "1", "a": "2"},
		{"a": "3", "c": "4"},
	}
	assert.Equal(t, []string{"a", "b", "c"}, Columns(rows, 12))
}

// Columns never returns more than the cap regardless of row count or
// per-row key count.
func TestColumnCapLaw(t *testing.T) {
	var rows []Row
	for i := 0; i < 5; i++ {
		row := make(Row)
		for j := 0; j < 10; j++ {
			row[fmt.Sprintf("col_%d_%d", i, j)] = "v"
		}
		rows = append(rows, row)
	}

	assert.Len(t, Columns(rows, 12), 12)
	assert.Len(t, Columns(rows, 5), 5)
	// Zero or negative caps fall back to the default.
	assert.Len(t, Columns(rows, 0), DefaultColumnCap)
}

func TestColumnsEmptyRows(t *testing.T) {
	assert.Empty(t, Columns(nil, 12))
	assert.Empty(t, Columns([]Row{}, 12))
}
