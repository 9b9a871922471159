package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type author struct {
	Name string `json:"name" binding:"required"`
}

type sample struct {
	Title  string  `json:"title" binding:"required,max=5"`
	Email  string  `json:"email" binding:"omitempty,email"`
	Limit  int     `json:"limit" binding:"omitempty,max=50"`
	Author *author `json:"author" binding:"omitempty"`
}

func TestStructAndToDetails(t *testing.T) {
	err := Struct(sample{Title: strings.Repeat("x", 6), Email: "nope", Limit: 51, Author: &author{}})
	require.Error(t, err)

	details := ToDetails(err)
	require.Equal(t, map[string]string{
		"title":       "must be at most 5 characters long",
		"email":       "must be a valid email",
		"limit":       "must be at most 50",
		"author.name": "is required",
	}, details)

	require.NoError(t, Struct(sample{Title: "ok"}))
}

func TestToDetailsJSONErrors(t *testing.T) {
	var s sample
	err := json.Unmarshal([]byte(`{"title": 5}`), &s)
	require.Equal(t, map[string]string{"title": "must be a string"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"title": `), &s)
	require.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	require.Nil(t, ToDetails(nil))
}
