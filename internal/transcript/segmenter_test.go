package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kingmrb/post-call-webhook/internal/menu"
)

func agentTurn(msg string) Turn { return Turn{Role: RoleAgent, Message: msg} }
func userTurn(msg string) Turn  { return Turn{Role: RoleUser, Message: msg} }

func TestFindFinalOrderBasic(t *testing.T) {
	turns := []Turn{
		agentTurn("Welcome to the restaurant, what can I get you?"),
		userTurn("I'd like two chicken biryanis, both mild please."),
		agentTurn("Your final order is: two chicken biryanis both with mild, is that correct?"),
		userTurn("yes that's right"),
	}

	final, err := FindFinalOrder(turns)
	require.NoError(t, err)
	assert.Equal(t, "two chicken biryanis both with mild,", final.OrderText)
	assert.Equal(t, 2, final.TurnIndex)
	assert.True(t, final.Confirmed)
}

func TestFindFinalOrderAnchorVariants(t *testing.T) {
	for _, msg := range []string{
		"Got it! Your final order is: one butter chicken. Is that correct?",
		"Here's your order: one butter chicken. Is that correct?",
		"To confirm: one butter chicken. Is that correct?",
	} {
		final, err := FindFinalOrder([]Turn{agentTurn(msg), userTurn("correct")})
		require.NoError(t, err, "anchor %q", msg)
		assert.Equal(t, "one butter chicken", final.OrderText, "anchor %q", msg)
		assert.True(t, final.Confirmed)
	}
}

func TestFindFinalOrderLastAnchorWins(t *testing.T) {
	turns := []Turn{
		agentTurn("Your final order is: one samosa, is that correct?"),
		userTurn("no wait, make it a butter chicken instead"),
		agentTurn("Your final order is: one butter chicken, is that correct?"),
		userTurn("yes"),
	}

	final, err := FindFinalOrder(turns)
	require.NoError(t, err)
	assert.Equal(t, "one butter chicken,", final.OrderText)
	assert.Equal(t, 2, final.TurnIndex)
	assert.True(t, final.Confirmed)
}

func TestFindFinalOrderUnconfirmed(t *testing.T) {
	turns := []Turn{
		agentTurn("Your final order is: one butter chicken, is that correct?"),
		userTurn("actually wait"),
	}

	final, err := FindFinalOrder(turns)
	require.NoError(t, err)
	assert.False(t, final.Confirmed)
	assert.Equal(t, "one butter chicken,", final.OrderText)
}

func TestFindFinalOrderMissingAnchor(t *testing.T) {
	turns := []Turn{
		agentTurn("Thanks for calling!"),
		userTurn("bye"),
	}

	_, err := FindFinalOrder(turns)
	assert.ErrorIs(t, err, ErrNoFinalOrder)
}

func TestFindFinalOrderToleratesEmptyMessages(t *testing.T) {
	turns := []Turn{
		{Role: RoleAgent},
		agentTurn("Your final order is: one samosa. Is that correct?"),
		userTurn("yes"),
	}

	final, err := FindFinalOrder(turns)
	require.NoError(t, err)
	assert.Equal(t, "one samosa", final.OrderText)
}

func TestSegmentItems(t *testing.T) {
	cases := []struct {
		orderText string
		want      []string
	}{
		{
			"two chicken biryanis both with mild",
			[]string{"two chicken biryanis both with mild"},
		},
		{
			"one butter chicken, two samosas and one mango lassi",
			[]string{"one butter chicken", "two samosas", "one mango lassi"},
		},
		{
			"one butter chicken; one lamb curry",
			[]string{"one butter chicken", "one lamb curry"},
		},
		{
			"a hot & sour soup and two garlic naan",
			[]string{"a hot & sour soup", "two garlic naan"},
		},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, SegmentItems(tc.orderText), "order text %q", tc.orderText)
	}
}

func TestSegmentItemsDropsShortFragments(t *testing.T) {
	got := SegmentItems("one samosa, , and ok")
	assert.Equal(t, []string{"one samosa"}, got)
}

func TestParseItems(t *testing.T) {
	catalog := menu.DefaultCatalog()
	log := zap.NewNop()

	items := ParseItems("two chicken biryanis both with mild, one butter chicken with spicy", catalog, log)
	require.Len(t, items, 2)

	assert.Equal(t, Candidate{Name: "chicken dum biryani", Quantity: 2, SpiceLevel: SpiceMild}, items[0])
	assert.Equal(t, Candidate{Name: "butter chicken", Quantity: 1, SpiceLevel: SpiceSpicy}, items[1])
}

func TestParseItemsDropsUnresolved(t *testing.T) {
	catalog := menu.DefaultCatalog()

	items := ParseItems("one flying saucer curry", catalog, zap.NewNop())
	assert.Empty(t, items)

	items = ParseItems("one flying saucer curry, one samosa", catalog, zap.NewNop())
	require.Len(t, items, 1)
	assert.Equal(t, "samosa", items[0].Name)
}
