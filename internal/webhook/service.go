package webhook

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kingmrb/post-call-webhook/internal/cart"
	"github.com/kingmrb/post-call-webhook/internal/llm"
	"github.com/kingmrb/post-call-webhook/internal/menu"
	"github.com/kingmrb/post-call-webhook/internal/order"
	"github.com/kingmrb/post-call-webhook/internal/pos"
	"github.com/kingmrb/post-call-webhook/internal/transcript"
)

// ErrDuplicateCall means this call ID was already processed; the redelivered
// event is acknowledged and ignored.
var ErrDuplicateCall = errors.New("webhook: call already processed")

// ErrEmptyCart means a live-cart update resolved to zero catalog items.
var ErrEmptyCart = errors.New("webhook: live cart update has no resolvable items")

const (
	seenRetention = 24 * time.Hour
	seenCapacity  = 1000
	// aiParseWait bounds the Gemini fallback; overrun degrades to the regex
	// parse result.
	aiParseWait = 20 * time.Second
)

// Service runs the whole post-call pipeline: segment the transcript, parse
// items (regex first, AI fallback), merge the live cart, extract contact,
// assemble, persist and submit.
type Service struct {
	catalog   *menu.Catalog
	assembler *order.Assembler
	parser    llm.OrderParser
	carts     cart.Store
	repo      order.Repository
	pos       pos.Submitter
	seen      *seenCalls
	log       *zap.Logger
	now       func() time.Time
}

func NewService(
	catalog *menu.Catalog,
	assembler *order.Assembler,
	parser llm.OrderParser,
	carts cart.Store,
	repo order.Repository,
	submitter pos.Submitter,
	log *zap.Logger,
) *Service {
	return &Service{
		catalog:   catalog,
		assembler: assembler,
		parser:    parser,
		carts:     carts,
		repo:      repo,
		pos:       submitter,
		seen:      newSeenCalls(seenCapacity, seenRetention),
		log:       log,
		now:       time.Now,
	}
}

// ProcessPostCall turns a call-completion event into an order. Per-item
// failures are skip-and-log; only a missing confirmation anchor or an empty
// item list yields ErrNoOrder.
func (s *Service) ProcessPostCall(ctx context.Context, payload PostCallPayload) (*order.Order, error) {
	callID := payload.Data.ConversationID
	if callID != "" && s.seen.markSeen(callID) {
		s.log.Info("duplicate call completion, skipping", zap.String("call_id", callID))
		return nil, ErrDuplicateCall
	}

	turns := payload.Data.Transcript
	if len(turns) == 0 {
		s.log.Warn("call completion without transcript", zap.String("call_id", callID))
		return nil, order.ErrNoOrder
	}

	final, err := transcript.FindFinalOrder(turns)
	if err != nil {
		s.log.Info("no final order confirmation in transcript", zap.String("call_id", callID))
		return nil, order.ErrNoOrder
	}
	if !final.Confirmed {
		s.log.Warn("final order not affirmed by customer, parsing anyway",
			zap.String("call_id", callID),
			zap.String("order_text", final.OrderText))
	}

	candidates := transcript.ParseItems(final.OrderText, s.catalog, s.log)
	if len(candidates) == 0 && s.parser != nil {
		candidates = s.parseWithAI(ctx, final.OrderText)
	}

	contact := transcript.ExtractContact(turns)

	var snapshot *cart.Snapshot
	if callID != "" {
		snap, ok, err := s.carts.Get(ctx, callID)
		if err != nil {
			s.log.Warn("live cart lookup failed", zap.String("call_id", callID), zap.Error(err))
		} else if ok {
			snapshot = snap
		}
	}

	o, err := s.assembler.Assemble(callID, candidates, contact,
		payload.Data.Analysis.TranscriptSummary, snapshot, final.Confirmed)
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		if err := s.repo.Save(ctx, o); err != nil {
			s.log.Error("failed to persist order", zap.String("call_id", callID), zap.Error(err))
		}
	}
	if err := s.pos.Submit(ctx, o); err != nil {
		s.log.Error("POS submission failed", zap.String("call_id", callID), zap.Error(err))
	}

	return o, nil
}

// parseWithAI asks the model for candidates when the regex pass found none.
// Model guesses still run through catalog normalization; unresolved names are
// dropped, never forwarded as unknown line items.
func (s *Service) parseWithAI(ctx context.Context, orderText string) []transcript.Candidate {
	ctx, cancel := context.WithTimeout(ctx, aiParseWait)
	defer cancel()

	parsed, err := s.parser.ParseOrderText(ctx, orderText)
	if err != nil {
		s.log.Warn("AI parser unavailable, continuing without it", zap.Error(err))
		return nil
	}

	var candidates []transcript.Candidate
	for _, item := range parsed {
		name, ok := s.catalog.Resolve(item.Item)
		if !ok {
			s.log.Warn("AI-suggested item not in catalog, dropping", zap.String("item", item.Item))
			continue
		}
		candidates = append(candidates, transcript.Candidate{
			Name:       name,
			Quantity:   item.Quantity,
			SpiceLevel: item.SpiceLevel,
			Notes:      item.Notes,
		})
	}
	return candidates
}

// ProcessLiveCart resolves an agent's running cart against the catalog,
// prices it and stores it as the call's snapshot. Unresolvable names are
// skipped; a cart with nothing resolvable is rejected.
func (s *Service) ProcessLiveCart(ctx context.Context, payload LiveCartPayload) (*cart.Snapshot, error) {
	if payload.CallID == "" || len(payload.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var lines []cart.Line
	for _, item := range payload.Items {
		name, ok := s.catalog.Resolve(item.Name)
		if !ok {
			s.log.Warn("live cart item not in catalog, skipping", zap.String("item", item.Name))
			continue
		}
		price, _ := s.catalog.Price(name)
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, cart.Line{
			Name:      name,
			Quantity:  qty,
			UnitPrice: price,
			LineTotal: price * float64(qty),
		})
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	snap := cart.Snapshot{
		CallID:     payload.CallID,
		Items:      lines,
		CapturedAt: s.now().UTC(),
	}
	if err := s.carts.Put(ctx, snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
