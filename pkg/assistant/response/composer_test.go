package response

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"opx-assistant-be/pkg/store"
)

func TestCountResponseContainsTheNumber(t *testing.T) {
	c := NewComposer()
	result := &store.ActionResult{Success: true, IsCount: true, Count: 42, Summary: "42 companies"}
	cmdIntent := &store.Intent{Name: "query_database", Confidence: 0.9}

	reply := c.Compose("how many registered companies are there?", result, nil, cmdIntent)
	assert.Contains(t, reply.Text, "42")
}

func TestFailureReturnsErrorVerbatim(t *testing.T) {
	c := NewComposer()
	result := &store.ActionResult{Success: false, Error: "company with this CNPJ already exists"}

	reply := c.Compose("create company", result, nil, &store.Intent{Name: "create_company"})
	assert.Equal(t, "company with this CNPJ already exists", reply.Text)
}

func TestCreateTemplate(t *testing.T) {
	c := NewComposer()
	result := &store.ActionResult{Success: true, Summary: "created"}

	reply := c.Compose("create company acme", result, nil, &store.Intent{Name: "create_company"})
	assert.Contains(t, reply.Text, "company")
	assert.Contains(t, strings.ToLower(reply.Text), "created")
}

func TestDeleteTemplate(t *testing.T) {
	c := NewComposer()
	result := &store.ActionResult{Success: true}

	reply := c.Compose("delete employee", result, nil, &store.Intent{Name: "delete_employee"})
	assert.Contains(t, reply.Text, "employee")
	assert.Contains(t, strings.ToLower(reply.Text), "removed")
}

func TestGroupedResponseNamesGroups(t *testing.T) {
	c := NewComposer()
	result := &store.ActionResult{
		Success:     true,
		IsAggregate: true,
		IsGrouped:   true,
		Data: []map[string]interface{}{
			{"sector": "tech", "count": 12},
			{"sector": "retail", "count": 7},
		},
	}

	reply := c.Compose("top sectors", result, nil, &store.Intent{Name: "query_database"})
	assert.Contains(t, reply.Text, "tech")
	assert.Contains(t, reply.Text, "12")
}

func TestListResponseCountsRecords(t *testing.T) {
	c := NewComposer()
	result := &store.ActionResult{
		Success: true,
		Data: []map[string]interface{}{
			{"name": "Acme"},
			{"name": "Umbrella"},
		},
	}

	reply := c.Compose("list companies", result, nil, &store.Intent{Name: "list_companies"})
	assert.Contains(t, reply.Text, "2")
	assert.Contains(t, reply.Text, "Acme")
}

func TestVoiceConfigDefaults(t *testing.T) {
	c := NewComposer()
	reply := c.Compose("anything", &store.ActionResult{Success: true}, nil, nil)
	assert.Equal(t, 1.0, reply.Voice.Speed)
	assert.Equal(t, 1.0, reply.Voice.Pitch)
}
