package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TextList
	}{
		{"array", `[" Bring ID ", "", "No pets"]`, TextList{"Bring ID", "No pets"}},
		{"comma separated", `"Hotel A, Hotel B ,,Bus Co"`, TextList{"Hotel A", "Hotel B", "Bus Co"}},
		{"newlines win over commas", `"Breakfast, lunch\nDinner"`, TextList{"Breakfast, lunch", "Dinner"}},
		{"blank string", `"   "`, TextList{}},
		{"null", `null`, TextList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TextList
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextList_Idempotent(t *testing.T) {
	var first TextList
	require.NoError(t, json.Unmarshal([]byte(`"a\n b \n\nc"`), &first))

	encoded, err := json.Marshal(first)
	require.NoError(t, err)

	var second TextList
	require.NoError(t, json.Unmarshal(encoded, &second))
	assert.Equal(t, first, second)
}

func TestTextList_RejectsOtherTypes(t *testing.T) {
	var got TextList
	assert.Error(t, json.Unmarshal([]byte(`42`), &got))
	assert.Error(t, json.Unmarshal([]byte(`["ok", 1]`), &got))
}
