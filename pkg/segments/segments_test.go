package segments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeNormalizesFieldVariants(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want Segment
	}{
		{
			name: "canonical fields",
			blob: `[{"speaker":"A","start_time":0,"end_time":2,"text":"hello","detected_language":"en"}]`,
			want: Segment{Speaker: "A", Start: 0, End: 2, Text: "hello", DetectedLanguage: "en"},
		},
		{
			name: "translation variant fields",
			blob: `[{"speaker_id":"B","start_time":1.5,"end_time":3,"original_text":"hola","translated_text":"hello"}]`,
			want: Segment{Speaker: "B", Start: 1.5, End: 3, Text: "hola", TranslatedText: "hello"},
		},
		{
			name: "short timestamp fields",
			blob: `[{"speaker":"C","start":4,"end":6,"text":"bye"}]`,
			want: Segment{Speaker: "C", Start: 4, End: 6, Text: "bye"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := Decode(tt.blob)
			require.NoError(t, err)
			require.Len(t, segs, 1)
			assert.Equal(t, tt.want, segs[0])
		})
	}
}

func TestDecodeEmptyBlob(t *testing.T) {
	segs, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, segs)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := []Segment{
		{Speaker: "A", Start: 0, End: 2, Text: "We decided to ship Friday.", DetectedLanguage: "en"},
		{Speaker: "B", Start: 2, End: 4, Text: "Sounds good."},
	}

	blob, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSentences(t *testing.T) {
	segs := []Segment{
		{Speaker: "A", Text: "We decided to ship Friday. Any objections?"},
		{Speaker: "B", Text: "No! Let's go."},
	}

	assert.Equal(t, []string{
		"We decided to ship Friday",
		"Any objections",
		"No",
		"Let's go",
	}, Sentences(segs))
}
