package feed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployee_Byline(t *testing.T) {
	e := Employee{ID: 1, Name: "Ann", Company: Company{Name: "Co", CatchPhrase: "CP"}}
	assert.Equal(t, "Author: Ann with Co", e.Byline())
}

func TestComment_Signature(t *testing.T) {
	assert.Equal(t, "From: a@b.c", Comment{Email: "a@b.c"}.Signature())
}

func TestEmployee_DecodesUpstreamShape(t *testing.T) {
	raw := `{
		"id": 1,
		"name": "Leanne Graham",
		"username": "Bret",
		"email": "Sincere@april.biz",
		"address": {"street": "Kulas Light"},
		"company": {
			"name": "Romaguera-Crona",
			"catchPhrase": "Multi-layered client-server neural-net",
			"bs": "harness real-time e-markets"
		}
	}`

	var e Employee
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, 1, e.ID)
	assert.Equal(t, "Romaguera-Crona", e.Company.Name)
	assert.Equal(t, "Multi-layered client-server neural-net", e.Company.CatchPhrase)
}

func TestPost_DecodesUserID(t *testing.T) {
	var p Post
	require.NoError(t, json.Unmarshal([]byte(`{"userId":3,"id":21,"title":"t","body":"b"}`), &p))
	assert.Equal(t, Post{ID: 21, UserID: 3, Title: "t", Body: "b"}, p)
}
