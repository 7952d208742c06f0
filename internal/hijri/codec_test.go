package hijri

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_ValueScan(t *testing.T) {
	d := MustParse("14440116")

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(14440116), v)

	var loaded Date
	require.NoError(t, loaded.Scan(v))
	assert.Equal(t, d, loaded)
}

func TestDate_Scan_Sources(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    int
		wantErr bool
	}{
		{name: "int64", src: int64(14380102), want: 14380102},
		{name: "int32", src: int32(14380102), want: 14380102},
		{name: "int", src: 14380102, want: 14380102},
		{name: "bytes", src: []byte("14380102"), want: 14380102},
		{name: "string", src: "14380102", want: 14380102},
		// Loads are trusted: an out-of-grammar stored value is kept as-is.
		{name: "unvalidated", src: int64(20230101), want: 20230101},
		{name: "nil", src: nil, wantErr: true},
		{name: "float", src: 1.5, wantErr: true},
		{name: "garbage string", src: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Int())
		})
	}
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		BirthDate Date `json:"birth_date"`
	}

	out, err := json.Marshal(payload{BirthDate: MustParse("1438-01-02")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"birth_date":"14380102"}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"birth_date":"1444-01-16"}`), &in))
	assert.Equal(t, 14440116, in.BirthDate.Int())

	err = json.Unmarshal([]byte(`{"birth_date":"14391301"}`), &in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}
