package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_AcceptsStringsAndNumbers(t *testing.T) {
	var records []struct {
		ID ID `json:"uid"`
	}
	err := json.Unmarshal([]byte(`[{"uid": 7}, {"uid": "3fa85f64-5717-4562-b3fc-2c963f66afa6"}, {"uid": null}]`), &records)
	require.NoError(t, err)

	assert.Equal(t, ID("7"), records[0].ID)
	assert.Equal(t, ID("3fa85f64-5717-4562-b3fc-2c963f66afa6"), records[1].ID)
	assert.Equal(t, ID(""), records[2].ID)
}

func TestID_RejectsObjects(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{"nested": 1}`), &id))
}

func TestSettings_Enabled(t *testing.T) {
	var settings Settings
	err := json.Unmarshal([]byte(`{"a": true, "b": "true", "c": "false", "d": false, "e": "TRUE", "f": 1}`), &settings)
	require.NoError(t, err)

	assert.True(t, settings.Enabled("a"))
	assert.True(t, settings.Enabled("b"))
	assert.False(t, settings.Enabled("c"))
	assert.False(t, settings.Enabled("d"))
	assert.False(t, settings.Enabled("e"))
	assert.False(t, settings.Enabled("f"))
	assert.False(t, settings.Enabled("missing"))
}
