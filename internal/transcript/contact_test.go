package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContact(t *testing.T) {
	turns := []Turn{
		agentTurn("What's your name and number?"),
		userTurn("John Smith, 555-123-4567"),
		agentTurn("To confirm, your name is John Smith and your phone number is 555-123-4567. Is that correct?"),
		userTurn("yes"),
	}

	contact := ExtractContact(turns)
	assert.Equal(t, "John Smith", contact.Name)
	assert.Equal(t, "555-123-4567", contact.Phone)
	assert.Equal(t, Unresolved, contact.Address)
}

func TestExtractContactLastConfirmationWins(t *testing.T) {
	turns := []Turn{
		agentTurn("To confirm, your name is Jon and your phone number is 555-000-0000. Is that correct?"),
		userTurn("no, it's John, and the number is wrong too"),
		agentTurn("To confirm, your name is John and your phone number is 555-123-4567. Is that correct?"),
		userTurn("correct"),
	}

	contact := ExtractContact(turns)
	assert.Equal(t, "John", contact.Name)
	assert.Equal(t, "555-123-4567", contact.Phone)
}

func TestPhoneCanonicalization(t *testing.T) {
	cases := []struct {
		spoken string
		want   string
	}{
		{"5551234567", "555-123-4567"},
		{"555.123.4567", "555-123-4567"},
		{"555 123 4567", "555-123-4567"},
		{"(555) 123-4567", "555-123-4567"},
		{"123-4567", Unresolved},       // 7 digits
		{"1-555-123-4567", Unresolved}, // 11 digits
	}

	for _, tc := range cases {
		turns := []Turn{
			agentTurn("To confirm, your name is Jane and your phone number is " + tc.spoken + ". Is that correct?"),
			userTurn("yes"),
		}
		assert.Equal(t, tc.want, ExtractContact(turns).Phone, "spoken %q", tc.spoken)
	}
}

func TestExtractContactAddress(t *testing.T) {
	turns := []Turn{
		userTurn("Can you deliver to 42 Elm Street, please?"),
		agentTurn("Sure."),
		userTurn("Actually my address is 17 Oak Avenue Apt 3."),
	}

	contact := ExtractContact(turns)
	assert.Equal(t, "17 Oak Avenue Apt 3", contact.Address)
}

func TestExtractContactDefaults(t *testing.T) {
	contact := ExtractContact([]Turn{agentTurn("hello"), userTurn("hi")})
	assert.Equal(t, Contact{Name: Unresolved, Phone: Unresolved, Address: Unresolved}, contact)
}

func TestExtractContactWithoutAffirmation(t *testing.T) {
	// Extraction still proceeds when the customer never answered.
	turns := []Turn{
		agentTurn("To confirm, your name is Maya and your phone number is 555-987-6543. Is that correct?"),
	}

	contact := ExtractContact(turns)
	assert.Equal(t, "Maya", contact.Name)
	assert.Equal(t, "555-987-6543", contact.Phone)
}
