package order

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kingmrb/post-call-webhook/internal/cart"
	"github.com/kingmrb/post-call-webhook/internal/menu"
	"github.com/kingmrb/post-call-webhook/internal/transcript"
)

// ErrNoOrder means assembly produced an empty item list: nothing to submit
// downstream. Reported, never retried.
var ErrNoOrder = errors.New("order: no items to assemble")

// DefaultTaxRate applies when config gives none.
const DefaultTaxRate = 0.065

var durationRe = regexp.MustCompile(`(\d+)\s*(minutes?|mins?|hours?|hrs?)`)

// Assembler builds orders from parsed candidates, optionally merging a live
// cart captured earlier in the same call.
type Assembler struct {
	catalog *menu.Catalog
	taxRate float64
	log     *zap.Logger
}

func NewAssembler(catalog *menu.Catalog, taxRate float64, log *zap.Logger) *Assembler {
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}
	return &Assembler{catalog: catalog, taxRate: taxRate, log: log}
}

// Assemble merges everything known about a call into one order. When a live
// cart exists its quantities and prices are authoritative and transcript
// candidates only contribute spice levels and notes; otherwise the order is
// built from the candidates against the catalog. An empty result is
// ErrNoOrder.
func (a *Assembler) Assemble(
	callID string,
	candidates []transcript.Candidate,
	contact transcript.Contact,
	summary string,
	liveCart *cart.Snapshot,
	confirmed bool,
) (*Order, error) {

	var items []LineItem
	if liveCart != nil {
		items = a.mergeLiveCart(liveCart, candidates)
	} else {
		items = a.buildFromCandidates(candidates)
	}
	if len(items) == 0 {
		return nil, ErrNoOrder
	}

	subtotal, tax, total := ComputeTotals(items, a.taxRate)

	return &Order{
		ID:           uuid.New().String(),
		CallID:       callID,
		CustomerName: contact.Name,
		Phone:        contact.Phone,
		Address:      contact.Address,
		Items:        items,
		PickupTime:   InferPickupTime(summary),
		OrderType:    InferOrderType(summary),
		Subtotal:     subtotal,
		Tax:          tax,
		Total:        total,
		Confirmed:    confirmed,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// buildFromCandidates prices each candidate and applies the default-mild rule
// before handing the line to AddItem.
func (a *Assembler) buildFromCandidates(candidates []transcript.Candidate) []LineItem {
	var items []LineItem
	for _, c := range candidates {
		price, ok := a.catalog.Price(c.Name)
		if !ok {
			a.log.Warn("candidate not in catalog, dropping", zap.String("item", c.Name))
			continue
		}
		items = AddItem(items, c.Name, c.Quantity, price, a.modifiers(c.Name, c.SpiceLevel, c.Notes))
	}
	return items
}

// mergeLiveCart enriches the authoritative cart lines with spice levels and
// notes recovered from the transcript, matched by canonical name plus
// quantity. Candidates absent from the cart do not add lines; the cart is
// what the agent actually rang up.
func (a *Assembler) mergeLiveCart(snap *cart.Snapshot, candidates []transcript.Candidate) []LineItem {
	var items []LineItem
	for _, line := range snap.Items {
		spice, notes := "", ""
		for _, c := range candidates {
			if c.Name == line.Name && c.Quantity == line.Quantity {
				spice, notes = c.SpiceLevel, c.Notes
				break
			}
		}
		items = AddItem(items, line.Name, line.Quantity, line.UnitPrice, a.modifiers(line.Name, spice, notes))
	}
	return items
}

// modifiers builds the fixed-sequence modifier list: spice first (explicit,
// or mild when the item class requires one), then freeform notes.
func (a *Assembler) modifiers(name, spice, notes string) []string {
	var mods []string
	if spice == "" && a.catalog.SpiceRequired(name) {
		spice = transcript.SpiceMild
	}
	if spice != "" {
		mods = append(mods, fmt.Sprintf("spice: %s", spice))
	}
	if notes != "" {
		mods = append(mods, notes)
	}
	return mods
}

// InferPickupTime finds a relative duration in free summary text, e.g.
// "customer will pick up in 20 minutes". Defaults to ASAP.
func InferPickupTime(summary string) string {
	m := durationRe.FindStringSubmatch(strings.ToLower(summary))
	if m == nil {
		return DefaultPickupTime
	}
	n := m[1]
	unit := "minute"
	if strings.HasPrefix(m[2], "h") {
		unit = "hour"
	}
	if n != "1" {
		unit += "s"
	}
	return n + " " + unit
}

// InferOrderType flags delivery when the summary mentions it, else pickup.
func InferOrderType(summary string) string {
	if strings.Contains(strings.ToLower(summary), "deliver") {
		return TypeDelivery
	}
	return TypePickup
}
